package signer

import (
	"strings"
	"testing"

	"hyperliquid-go-sdk/hlenv"
)

const testPrivHex = "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"

func exampleOrderAction() OrderedMap {
	return OrderedMap{
		{Key: "type", Value: "order"},
		{Key: "orders", Value: []interface{}{
			OrderedMap{
				{Key: "a", Value: int64(1)},
				{Key: "b", Value: true},
				{Key: "p", Value: "50000.0"},
				{Key: "s", Value: "0.1"},
				{Key: "r", Value: false},
				{Key: "t", Value: OrderedMap{
					{Key: "limit", Value: OrderedMap{{Key: "tif", Value: "Gtc"}}},
				}},
			},
		}},
	}
}

func TestActionHashDeterministic(t *testing.T) {
	action := exampleOrderAction()
	h1, err := ActionHash(action, 12345678, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := ActionHash(action, 12345678, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected deterministic hash, got %q vs %q", h1, h2)
	}
	if len(h1) != 66 || !strings.HasPrefix(h1, "0x") {
		t.Fatalf("expected 66-char 0x-prefixed hex, got %q (%d chars)", h1, len(h1))
	}
}

func TestActionHashRejectsBadVaultLength(t *testing.T) {
	action := exampleOrderAction()
	_, err := ActionHash(action, 1, []byte{0x01, 0x02}, nil)
	if err == nil {
		t.Fatal("expected error for non-20-byte vault address")
	}
}

func TestSignL1ActionAndRecover(t *testing.T) {
	action := exampleOrderAction()
	sig, err := SignL1Action(testPrivHex, action, nil, 12345678, nil, hlenv.Mainnet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.V != 27 && sig.V != 28 {
		t.Fatalf("expected v in {27,28}, got %d", sig.V)
	}

	h, err := ActionHash(action, 12345678, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agent := PhantomAgent{Source: hlenv.Mainnet.PhantomAgentSource(), ConnectionID: h}
	payload := BuildL1Payload(agent)

	addr, err := RecoverAddress(payload, sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(addr, "0x") || len(addr) != 42 {
		t.Fatalf("unexpected recovered address shape: %q", addr)
	}

	ok, err := VerifySignature(payload, sig, addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected signature to verify against its own recovered address")
	}
}

func TestSignMessageRejectsBadPrivateKey(t *testing.T) {
	action := exampleOrderAction()
	_, err := SignL1Action("not-hex", action, nil, 1, nil, hlenv.Mainnet)
	if err == nil {
		t.Fatal("expected error for malformed private key hex")
	}
}

func TestSignUserSignedActionUsdSend(t *testing.T) {
	action := map[string]interface{}{
		"destination": "0x0000000000000000000000000000000000000001",
		"amount":      "10.5",
		"time":        uint64(1234567890),
	}
	sig, err := SignUserSignedAction(testPrivHex, action, USDSendFields, PrimaryTypeUSDSend, hlenv.Testnet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Hex() == "" {
		t.Fatal("expected non-empty signature hex")
	}
}

func TestEnvelopeThresholdAndContribution(t *testing.T) {
	inner := exampleOrderAction()
	env := NewEnvelope(inner, "0x0000000000000000000000000000000000000002", 42, "")
	if env.HasSufficientSignatures(1) {
		t.Fatal("expected insufficient signatures before any contribution")
	}

	sig, err := env.SignContribution(testPrivHex, hlenv.Mainnet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.AddSignature(sig.Hex())

	if !env.HasSufficientSignatures(1) {
		t.Fatal("expected sufficient signatures after one contribution with threshold 1")
	}
	if env.HasSufficientSignatures(2) {
		t.Fatal("expected insufficient signatures against threshold 2")
	}
}
