package precision

import "fmt"

// TimeInForce is a limit order's time-in-force, carried as the "tif" field
// of the limit variant nested under the order wire's "t".
type TimeInForce string

const (
	TifGtc TimeInForce = "Gtc"
	TifIoc TimeInForce = "Ioc"
	TifAlo TimeInForce = "Alo"
)

// OrderWire is the JSON shape of a single order as transmitted and hashed.
type OrderWire struct {
	Asset      int    `msgpack:"a" json:"a"`
	IsBuy      bool   `msgpack:"b" json:"b"`
	Price      string `msgpack:"p" json:"p"`
	Size       string `msgpack:"s" json:"s"`
	ReduceOnly bool   `msgpack:"r" json:"r"`
	OrderType  OrderTypeWire `msgpack:"t" json:"t"`
	Cloid      string `msgpack:"c,omitempty" json:"c,omitempty"`
}

// OrderTypeWire nests either a limit or a trigger order type, matching the
// exchange's tagged-union wire shape.
type OrderTypeWire struct {
	Limit   *LimitOrderWire   `msgpack:"limit,omitempty" json:"limit,omitempty"`
	Trigger *TriggerOrderWire `msgpack:"trigger,omitempty" json:"trigger,omitempty"`
}

type LimitOrderWire struct {
	Tif TimeInForce `msgpack:"tif" json:"tif"`
}

type TriggerOrderWire struct {
	IsMarket  bool   `msgpack:"isMarket" json:"isMarket"`
	TriggerPx string `msgpack:"triggerPx" json:"triggerPx"`
	TPSL      string `msgpack:"tpsl" json:"tpsl"`
}

// OrderBuilder constructs an OrderWire fluently, validating price and
// quantity precision at each setter and failing at Build time with the
// first error encountered.
type OrderBuilder struct {
	wire OrderWire
	err  error
}

// NewOrderBuilder starts a builder for the given asset index and side.
func NewOrderBuilder(asset int, isBuy bool) *OrderBuilder {
	return &OrderBuilder{wire: OrderWire{Asset: asset, IsBuy: isBuy}}
}

func (b *OrderBuilder) fail(err error) *OrderBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Price sets the limit price, converting it to wire form at 8 decimals.
func (b *OrderBuilder) Price(px float64) *OrderBuilder {
	if b.err != nil {
		return b
	}
	s, err := FloatToWire(px)
	if err != nil {
		return b.fail(fmt.Errorf("order price: %w", err))
	}
	b.wire.Price = s
	return b
}

// Size sets the order quantity, converting it to wire form at 8 decimals.
func (b *OrderBuilder) Size(sz float64) *OrderBuilder {
	if b.err != nil {
		return b
	}
	s, err := FloatToWire(sz)
	if err != nil {
		return b.fail(fmt.Errorf("order size: %w", err))
	}
	b.wire.Size = s
	return b
}

// ReduceOnly marks the order as reduce-only.
func (b *OrderBuilder) ReduceOnly(v bool) *OrderBuilder {
	b.wire.ReduceOnly = v
	return b
}

// Limit sets the order type to a resting limit order with the given
// time-in-force.
func (b *OrderBuilder) Limit(tif TimeInForce) *OrderBuilder {
	b.wire.OrderType = OrderTypeWire{Limit: &LimitOrderWire{Tif: tif}}
	return b
}

// Trigger sets the order type to a trigger order.
func (b *OrderBuilder) Trigger(isMarket bool, triggerPx float64, tpsl string) *OrderBuilder {
	if b.err != nil {
		return b
	}
	s, err := FloatToWire(triggerPx)
	if err != nil {
		return b.fail(fmt.Errorf("trigger price: %w", err))
	}
	b.wire.OrderType = OrderTypeWire{Trigger: &TriggerOrderWire{IsMarket: isMarket, TriggerPx: s, TPSL: tpsl}}
	return b
}

// Cloid sets the caller-supplied client order id (hex string).
func (b *OrderBuilder) Cloid(cloid string) *OrderBuilder {
	b.wire.Cloid = cloid
	return b
}

// Build returns the assembled OrderWire, or the first error recorded by a
// setter.
func (b *OrderBuilder) Build() (OrderWire, error) {
	if b.err != nil {
		return OrderWire{}, b.err
	}
	if b.wire.OrderType.Limit == nil && b.wire.OrderType.Trigger == nil {
		return OrderWire{}, fmt.Errorf("order: must set Limit or Trigger order type")
	}
	return b.wire, nil
}
