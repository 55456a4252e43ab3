package stream

import "testing"

func TestSubscriptionKeyVariants(t *testing.T) {
	cases := []struct {
		sub  Subscription
		want string
	}{
		{Subscription{Type: SubAllMids}, "allMids"},
		{Subscription{Type: SubL2Book, Coin: "BTC"}, "l2Book:BTC"},
		{Subscription{Type: SubTrades, Coin: "ETH"}, "trades:ETH"},
		{Subscription{Type: SubCandle, Coin: "SOL", Interval: "1m"}, "candle:SOL:1m"},
		{Subscription{Type: SubUserFills, User: "0xabc"}, "userFills:0xabc"},
		{Subscription{Type: SubActiveAssetData, User: "0xabc", Coin: "BTC"}, "activeAssetData:0xabc:BTC"},
	}
	for _, c := range cases {
		if got := c.sub.Key(); got != c.want {
			t.Errorf("Key() = %q, want %q", got, c.want)
		}
	}
}

func TestSubscriptionToWireOmitsEmptyFields(t *testing.T) {
	wire := Subscription{Type: SubAllMids}.ToWire()
	if _, ok := wire["coin"]; ok {
		t.Fatal("expected no coin field for allMids")
	}
	if wire["type"] != SubAllMids {
		t.Fatalf("unexpected type field: %v", wire["type"])
	}

	wire = Subscription{Type: SubL2Book, Coin: "BTC"}.ToWire()
	if wire["coin"] != "BTC" {
		t.Fatalf("expected coin=BTC, got %v", wire["coin"])
	}
}

func TestFrameKeyMatchesSubscriptionKey(t *testing.T) {
	sub := Subscription{Type: SubTrades, Coin: "ETH"}
	data := []byte(`{"coin":"ETH","trades":[]}`)
	if got := frameKey(SubTrades, data); got != sub.Key() {
		t.Fatalf("frameKey() = %q, want %q", got, sub.Key())
	}
}
