package client

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"hyperliquid-go-sdk/hlerr"
	"hyperliquid-go-sdk/transport"
)

// InfoClient is a typed wrapper over the transport core for the
// exchange's read-only "/info" endpoint. It additionally maintains an
// in-memory coin-name<->asset-index mapping, populated by calling Meta
// once at startup via InitializeAssets.
type InfoClient struct {
	http *transport.Client

	mu                sync.RWMutex
	coinToAsset       map[string]int
	assetToSzDecimals map[int]int
}

// NewInfoClient wraps an already-constructed transport.Client.
func NewInfoClient(http *transport.Client) *InfoClient {
	return &InfoClient{
		http:              http,
		coinToAsset:       make(map[string]int),
		assetToSzDecimals: make(map[int]int),
	}
}

func (c *InfoClient) post(ctx context.Context, body map[string]interface{}, out interface{}) error {
	env, err := c.http.Do(ctx, "POST", "/info", body)
	if err != nil {
		return err
	}
	if env.IsError {
		return hlerr.NewClient(strconv.Itoa(env.Code), env.Msg, env.Data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return hlerr.Wrap(hlerr.JSON, "decode info response", err)
	}
	return nil
}

// Meta fetches the exchange's asset universe for dex (empty string for
// the default perp dex).
func (c *InfoClient) Meta(ctx context.Context, dex string) (Meta, error) {
	var m Meta
	err := c.post(ctx, map[string]interface{}{"type": "meta", "dex": dex}, &m)
	return m, err
}

// SpotMeta fetches the spot-market asset universe and token list.
func (c *InfoClient) SpotMeta(ctx context.Context) (SpotMeta, error) {
	var m SpotMeta
	err := c.post(ctx, map[string]interface{}{"type": "spotMeta"}, &m)
	return m, err
}

// UserState fetches a user's clearinghouse state (margin summary and open
// positions) for dex.
func (c *InfoClient) UserState(ctx context.Context, address, dex string) (UserState, error) {
	var s UserState
	err := c.post(ctx, map[string]interface{}{"type": "clearinghouseState", "user": address, "dex": dex}, &s)
	return s, err
}

// L2Book fetches the L2 order book snapshot for coin.
func (c *InfoClient) L2Book(ctx context.Context, coin, dex string) (L2Book, error) {
	var b L2Book
	err := c.post(ctx, map[string]interface{}{"type": "l2Book", "coin": coin, "dex": dex}, &b)
	return b, err
}

// Trades fetches recent trade prints for coin.
func (c *InfoClient) Trades(ctx context.Context, coin, dex string) ([]Trade, error) {
	var t []Trade
	err := c.post(ctx, map[string]interface{}{"type": "trades", "coin": coin, "dex": dex}, &t)
	return t, err
}

// Candles fetches OHLCV bars for coin at interval between startTime and
// endTime, both unix milliseconds.
func (c *InfoClient) Candles(ctx context.Context, coin, interval string, startTime, endTime int64, dex string) ([]Candle, error) {
	var out []Candle
	err := c.post(ctx, map[string]interface{}{
		"type": "candle", "coin": coin, "interval": interval,
		"startTime": startTime, "endTime": endTime, "dex": dex,
	}, &out)
	return out, err
}

// AllMids fetches the current mid price for every coin on dex.
func (c *InfoClient) AllMids(ctx context.Context, dex string) (map[string]string, error) {
	var out map[string]string
	err := c.post(ctx, map[string]interface{}{"type": "allMids", "dex": dex}, &out)
	return out, err
}

// BBO fetches the best bid/offer snapshot for coin.
func (c *InfoClient) BBO(ctx context.Context, coin, dex string) (BBO, error) {
	var out BBO
	err := c.post(ctx, map[string]interface{}{"type": "bbo", "coin": coin, "dex": dex}, &out)
	return out, err
}

// OpenOrders fetches a user's currently resting orders on dex.
func (c *InfoClient) OpenOrders(ctx context.Context, address, dex string) (json.RawMessage, error) {
	env, err := c.http.Do(ctx, "POST", "/info", map[string]interface{}{"type": "openOrders", "user": address, "dex": dex})
	if err != nil {
		return nil, err
	}
	if env.IsError {
		return nil, hlerr.NewClient(strconv.Itoa(env.Code), env.Msg, env.Data)
	}
	return env.Data, nil
}

// UserFills fetches a user's historical fills.
func (c *InfoClient) UserFills(ctx context.Context, address string) (json.RawMessage, error) {
	env, err := c.http.Do(ctx, "POST", "/info", map[string]interface{}{"type": "userFills", "user": address})
	if err != nil {
		return nil, err
	}
	if env.IsError {
		return nil, hlerr.NewClient(strconv.Itoa(env.Code), env.Msg, env.Data)
	}
	return env.Data, nil
}

// FundingHistory fetches historical funding payments for coin between
// startTime and endTime.
func (c *InfoClient) FundingHistory(ctx context.Context, coin string, startTime, endTime int64) (json.RawMessage, error) {
	env, err := c.http.Do(ctx, "POST", "/info", map[string]interface{}{
		"type": "fundingHistory", "coin": coin, "startTime": startTime, "endTime": endTime,
	})
	if err != nil {
		return nil, err
	}
	if env.IsError {
		return nil, hlerr.NewClient(strconv.Itoa(env.Code), env.Msg, env.Data)
	}
	return env.Data, nil
}

// InitializeAssets calls Meta for dex and rebuilds the coin-name<->
// asset-index and asset-index->size-decimals caches from the response.
// Intended to be called once at client startup.
func (c *InfoClient) InitializeAssets(ctx context.Context, dex string) error {
	m, err := c.Meta(ctx, dex)
	if err != nil {
		return err
	}

	coinToAsset := make(map[string]int, len(m.Universe))
	assetToSzDecimals := make(map[int]int, len(m.Universe))
	for i, a := range m.Universe {
		coinToAsset[a.Name] = i
		assetToSzDecimals[i] = a.SzDecimals
	}

	c.mu.Lock()
	c.coinToAsset = coinToAsset
	c.assetToSzDecimals = assetToSzDecimals
	c.mu.Unlock()
	return nil
}

// AssetIndex looks up coin's asset index, populated by InitializeAssets.
func (c *InfoClient) AssetIndex(coin string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.coinToAsset[coin]
	return idx, ok
}

// SzDecimalsForAsset looks up the size-decimals precision for an asset
// index, populated by InitializeAssets.
func (c *InfoClient) SzDecimalsForAsset(asset int) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.assetToSzDecimals[asset]
	return d, ok
}

// SzDecimalsForCoin is a convenience combining AssetIndex and
// SzDecimalsForAsset.
func (c *InfoClient) SzDecimalsForCoin(coin string) (int, bool) {
	idx, ok := c.AssetIndex(coin)
	if !ok {
		return 0, false
	}
	return c.SzDecimalsForAsset(idx)
}

// KnownCoins returns every coin name currently in the asset-index cache.
func (c *InfoClient) KnownCoins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coins := make([]string, 0, len(c.coinToAsset))
	for coin := range c.coinToAsset {
		coins = append(coins, coin)
	}
	return coins
}
