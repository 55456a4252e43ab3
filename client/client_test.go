package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/precision"
	"hyperliquid-go-sdk/transport"
)

const testPrivHex = "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"

func newTestTransport(t *testing.T, srv *httptest.Server) *transport.Client {
	t.Helper()
	cfg := transport.DefaultConfig(srv.URL)
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.Retry.MaxDelay = 5 * time.Millisecond
	c, err := transport.NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(c.Shutdown)
	return c
}

func TestInfoClientMetaInitializesAssetCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["type"] != "meta" {
			t.Fatalf("unexpected request type: %v", body["type"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"universe":[{"name":"BTC","szDecimals":5,"maxLeverage":50},{"name":"ETH","szDecimals":4,"maxLeverage":50}]}`))
	}))
	defer srv.Close()

	info := NewInfoClient(newTestTransport(t, srv))
	if err := info.InitializeAssets(context.Background(), ""); err != nil {
		t.Fatalf("InitializeAssets: %v", err)
	}

	idx, ok := info.AssetIndex("ETH")
	if !ok || idx != 1 {
		t.Fatalf("expected ETH at index 1, got %d, ok=%v", idx, ok)
	}
	dec, ok := info.SzDecimalsForCoin("BTC")
	if !ok || dec != 5 {
		t.Fatalf("expected BTC szDecimals 5, got %d, ok=%v", dec, ok)
	}
	if _, ok := info.AssetIndex("DOGE"); ok {
		t.Fatal("expected unknown coin to miss the cache")
	}
}

func TestInfoClientL2Book(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"coin":"BTC","time":1000,"levels":[[{"px":"50000","sz":"1","n":1}],[{"px":"50001","sz":"2","n":1}]]}`))
	}))
	defer srv.Close()

	info := NewInfoClient(newTestTransport(t, srv))
	book, err := info.L2Book(context.Background(), "BTC", "")
	if err != nil {
		t.Fatalf("L2Book: %v", err)
	}
	if book.Coin != "BTC" || len(book.Levels) != 2 {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestInfoClientErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":7,"msg":"unknown coin"}`))
	}))
	defer srv.Close()

	info := NewInfoClient(newTestTransport(t, srv))
	if _, err := info.L2Book(context.Background(), "NOPE", ""); err == nil {
		t.Fatal("expected error for error envelope response")
	}
}

func TestExchangeClientOrderSignsAndSubmits(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":1}}]}}}`))
	}))
	defer srv.Close()

	ex := NewExchangeClient(newTestTransport(t, srv), testPrivHex, hlenv.Mainnet)

	order, err := precision.NewOrderBuilder(0, true).Price(50000.0).Size(0.1).Limit(precision.TifGtc).Build()
	if err != nil {
		t.Fatalf("build order: %v", err)
	}

	resp, err := ex.Order(context.Background(), []precision.OrderWire{order}, nil)
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	action, ok := gotBody["action"].(map[string]interface{})
	if !ok || action["type"] != "order" {
		t.Fatalf("unexpected submitted action: %+v", gotBody)
	}
	sig, ok := gotBody["signature"].(map[string]interface{})
	if !ok || sig["r"] == "" || sig["s"] == "" {
		t.Fatalf("expected a populated signature, got %+v", gotBody["signature"])
	}
	if gotBody["nonce"] == nil {
		t.Fatal("expected a nonce on the submitted envelope")
	}
}

func TestExchangeClientUSDSendAugmentsChainFields(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"default","data":{"statuses":[]}}}`))
	}))
	defer srv.Close()

	ex := NewExchangeClient(newTestTransport(t, srv), testPrivHex, hlenv.Testnet)
	if _, err := ex.USDSend(context.Background(), "0x0000000000000000000000000000000000000001", "10.5"); err != nil {
		t.Fatalf("USDSend: %v", err)
	}

	action, ok := gotBody["action"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing action in body: %+v", gotBody)
	}
	if action["hyperliquidChain"] != "Testnet" {
		t.Fatalf("expected hyperliquidChain=Testnet, got %v", action["hyperliquidChain"])
	}
	if action["signatureChainId"] != "0x66eee" {
		t.Fatalf("expected signatureChainId=0x66eee, got %v", action["signatureChainId"])
	}
	if action["type"] != "usdSend" {
		t.Fatalf("expected type=usdSend, got %v", action["type"])
	}
}

func TestExchangeClientWithVaultSubmitsVaultAddress(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","response":{"type":"cancel","data":{"statuses":[]}}}`))
	}))
	defer srv.Close()

	vault := "0x1234567890123456789012345678901234567890"
	ex := NewExchangeClient(newTestTransport(t, srv), testPrivHex, hlenv.Mainnet).WithVault(vault)

	if _, err := ex.CancelOrders(context.Background(), []CancelRequest{{Asset: 0, Oid: 1}}); err != nil {
		t.Fatalf("CancelOrders: %v", err)
	}
	if gotBody["vaultAddress"] != vault {
		t.Fatalf("expected vaultAddress %q, got %v", vault, gotBody["vaultAddress"])
	}
}
