package client

import (
	"hyperliquid-go-sdk/precision"
	"hyperliquid-go-sdk/signer"
)

// CancelRequest identifies one order to cancel by asset and order id.
type CancelRequest struct {
	Asset int   `json:"a"`
	Oid   int64 `json:"o"`
}

// CancelByCloidRequest identifies one order to cancel by asset and the
// caller-supplied client order id.
type CancelByCloidRequest struct {
	Asset int    `json:"asset"`
	Cloid string `json:"cloid"`
}

// ModifyRequest replaces an existing resting order's terms in place.
type ModifyRequest struct {
	Oid   int64               `json:"oid"`
	Order precision.OrderWire `json:"order"`
}

// UpdateLeverageRequest sets an asset's leverage and margin mode.
type UpdateLeverageRequest struct {
	Asset    int  `json:"asset"`
	IsCross  bool `json:"isCross"`
	Leverage int  `json:"leverage"`
}

// orderActionOrderedMap assembles the named-map hash input for a single
// order's wire fields, in the exact key order the exchange hashes:
// a, b, p, s, r, t, and c only when a client order id is set.
func orderActionOrderedMap(o precision.OrderWire) signer.OrderedMap {
	fields := signer.OrderedMap{
		{Key: "a", Value: o.Asset},
		{Key: "b", Value: o.IsBuy},
		{Key: "p", Value: o.Price},
		{Key: "s", Value: o.Size},
		{Key: "r", Value: o.ReduceOnly},
		{Key: "t", Value: orderTypeOrderedMap(o.OrderType)},
	}
	if o.Cloid != "" {
		fields = append(fields, signer.Field{Key: "c", Value: o.Cloid})
	}
	return fields
}

func orderTypeOrderedMap(t precision.OrderTypeWire) signer.OrderedMap {
	if t.Limit != nil {
		return signer.OrderedMap{{Key: "limit", Value: signer.OrderedMap{{Key: "tif", Value: string(t.Limit.Tif)}}}}
	}
	if t.Trigger != nil {
		return signer.OrderedMap{{Key: "trigger", Value: signer.OrderedMap{
			{Key: "isMarket", Value: t.Trigger.IsMarket},
			{Key: "triggerPx", Value: t.Trigger.TriggerPx},
			{Key: "tpsl", Value: t.Trigger.TPSL},
		}}}
	}
	return nil
}
