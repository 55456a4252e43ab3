package stream

import "testing"

func TestRouterDispatchesToRegisteredHandler(t *testing.T) {
	r := NewRouter()
	var got Message
	r.RegisterHandler("trades:BTC", func(m Message) { got = m })

	routed := r.Route("trades:BTC", Message{Channel: "trades", Data: []byte(`{"coin":"BTC"}`)})
	if !routed {
		t.Fatal("expected handler to be invoked")
	}
	if got.Channel != "trades" {
		t.Fatalf("handler did not receive expected message: %+v", got)
	}
}

func TestRouterNoHandlerIsNoop(t *testing.T) {
	r := NewRouter()
	if r.Route("unknown", Message{}) {
		t.Fatal("expected Route to report no handler")
	}
}

func TestRouterReRegisterReplaces(t *testing.T) {
	r := NewRouter()
	calls := 0
	r.RegisterHandler("k", func(Message) { calls++ })
	r.RegisterHandler("k", func(Message) { calls += 10 })
	r.Route("k", Message{})
	if calls != 10 {
		t.Fatalf("expected replacement handler to run, calls=%d", calls)
	}
}

func TestRouterUnregister(t *testing.T) {
	r := NewRouter()
	r.RegisterHandler("k", func(Message) {})
	r.Unregister("k")
	if r.Route("k", Message{}) {
		t.Fatal("expected no handler after unregister")
	}
}
