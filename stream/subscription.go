package stream

import "fmt"

// Subscription identifies one real-time feed. Only the fields relevant
// to Type are populated; Key derives the deterministic registry/router
// identity and ToWire derives the JSON subscription object sent on the
// wire.
type Subscription struct {
	Type     string
	Coin     string
	User     string
	Interval string
}

const (
	SubAllMids                     = "allMids"
	SubL2Book                      = "l2Book"
	SubTrades                      = "trades"
	SubBbo                         = "bbo"
	SubCandle                      = "candle"
	SubUserEvents                  = "userEvents"
	SubUserFills                   = "userFills"
	SubOrderUpdates                = "orderUpdates"
	SubUserFundings                = "userFundings"
	SubUserNonFundingLedgerUpdates = "userNonFundingLedgerUpdates"
	SubWebData2                    = "webData2"
	SubActiveAssetCtx              = "activeAssetCtx"
	SubActiveAssetData             = "activeAssetData"
)

// Key returns the deterministic string identity used by the
// subscription registry and the router to dispatch frames.
func (s Subscription) Key() string {
	switch s.Type {
	case SubAllMids:
		return SubAllMids
	case SubL2Book, SubTrades, SubBbo, SubActiveAssetCtx:
		return fmt.Sprintf("%s:%s", s.Type, s.Coin)
	case SubCandle:
		return fmt.Sprintf("%s:%s:%s", s.Type, s.Coin, s.Interval)
	case SubActiveAssetData:
		return fmt.Sprintf("%s:%s:%s", s.Type, s.User, s.Coin)
	case SubUserEvents, SubUserFills, SubOrderUpdates, SubUserFundings,
		SubUserNonFundingLedgerUpdates, SubWebData2:
		return fmt.Sprintf("%s:%s", s.Type, s.User)
	default:
		return s.Type
	}
}

// ToWire renders the subscription object sent in a subscribe/unsubscribe
// frame: {"type": ..., plus whichever of coin/user/interval apply}.
func (s Subscription) ToWire() map[string]interface{} {
	wire := map[string]interface{}{"type": s.Type}
	if s.Coin != "" {
		wire["coin"] = s.Coin
	}
	if s.User != "" {
		wire["user"] = s.User
	}
	if s.Interval != "" {
		wire["interval"] = s.Interval
	}
	return wire
}

// Message is a parsed server frame: a named channel plus its raw
// payload, handed to the buffer and the router.
type Message struct {
	Channel string
	Data    []byte
}
