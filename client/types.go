// Package client implements the Info and Exchange facades: thin typed
// wrappers over the transport core that map one request shape per
// endpoint to a JSON body carrying a "type" tag, and that maintain the
// Info client's asset-index cache.
package client

// AssetMeta is one entry of the exchange's asset universe, as returned by
// the "meta" endpoint.
type AssetMeta struct {
	Name        string `json:"name"`
	SzDecimals  int    `json:"szDecimals"`
	MaxLeverage int    `json:"maxLeverage"`
}

// Meta is the exchange metadata response: the universe of tradeable
// assets, in the fixed order that determines each asset's index.
type Meta struct {
	Universe []AssetMeta `json:"universe"`
}

// SpotTokenMeta is one spot token's metadata entry.
type SpotTokenMeta struct {
	Name        string `json:"name"`
	SzDecimals  int    `json:"szDecimals"`
	WeiDecimals int    `json:"weiDecimals"`
	Index       int    `json:"index"`
}

// SpotMeta is the spot-market counterpart of Meta.
type SpotMeta struct {
	Tokens    []SpotTokenMeta `json:"tokens"`
	Universe  []AssetMeta     `json:"universe"`
}

// L2Level is one price level of an order book side.
type L2Level struct {
	Px string `json:"px"`
	Sz string `json:"sz"`
	N  int    `json:"n"`
}

// L2Book is an L2 order book snapshot: two sides, bids then asks, each a
// list of price levels nearest-first.
type L2Book struct {
	Coin   string      `json:"coin"`
	Levels [][]L2Level `json:"levels"`
	Time   int64       `json:"time"`
}

// Trade is one executed trade print.
type Trade struct {
	Coin string `json:"coin"`
	Side string `json:"side"`
	Px   string `json:"px"`
	Sz   string `json:"sz"`
	Time int64  `json:"time"`
	Tid  int64  `json:"tid"`
}

// Candle is one OHLCV bar.
type Candle struct {
	Time     int64  `json:"t"`
	Close    string `json:"c"`
	High     string `json:"h"`
	Low      string `json:"l"`
	Open     string `json:"o"`
	Symbol   string `json:"s"`
	Interval string `json:"i"`
	Volume   string `json:"v"`
}

// MidPrice is one coin's current mid price, as returned in the allMids
// map (keyed by coin in the raw response, flattened here for convenience).
type MidPrice struct {
	Coin string `json:"coin"`
	Px   string `json:"px"`
}

// BBO is the best bid/offer snapshot for one coin.
type BBO struct {
	Coin string     `json:"coin"`
	Bbo  [2]*L2Level `json:"bbo"`
	Time int64       `json:"time"`
}

// AssetPosition is one open position entry within UserState.
type AssetPosition struct {
	Position struct {
		Coin          string `json:"coin"`
		Szi           string `json:"szi"`
		EntryPx       string `json:"entryPx"`
		PositionValue string `json:"positionValue"`
		UnrealizedPnl string `json:"unrealizedPnl"`
		Leverage      struct {
			Type  string `json:"type"`
			Value int    `json:"value"`
		} `json:"leverage"`
	} `json:"position"`
}

// UserState is the user's clearinghouse state: margin summary and open
// positions.
type UserState struct {
	MarginSummary struct {
		AccountValue    string `json:"accountValue"`
		TotalMarginUsed string `json:"totalMarginUsed"`
		TotalNtlPos     string `json:"totalNtlPos"`
	} `json:"marginSummary"`
	AssetPositions []AssetPosition `json:"assetPositions"`
}

// OrderStatus is one entry of an order-placement response.
type OrderStatus struct {
	Resting *struct {
		Oid int64 `json:"oid"`
	} `json:"resting,omitempty"`
	Filled *struct {
		Oid     int64  `json:"oid"`
		AvgPx   string `json:"avgPx"`
		TotalSz string `json:"totalSz"`
	} `json:"filled,omitempty"`
	Error string `json:"error,omitempty"`
}

// OrderResponse is the exchange's response to an order/cancel/modify
// submission: a status string plus per-order statuses.
type OrderResponse struct {
	Status   string `json:"status"`
	Response struct {
		Type string `json:"type"`
		Data struct {
			Statuses []OrderStatus `json:"statuses"`
		} `json:"data"`
	} `json:"response"`
}
