package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/hlerr"
	"hyperliquid-go-sdk/nonce"
	"hyperliquid-go-sdk/precision"
	"hyperliquid-go-sdk/signer"
	"hyperliquid-go-sdk/transport"
)

// ExchangeClient is a typed wrapper over the transport core for the
// exchange's trading "/exchange" endpoint. It is responsible for calling
// the signer before POSTing every action body: callers never construct a
// signature themselves.
type ExchangeClient struct {
	http       *transport.Client
	privKeyHex string
	env        hlenv.Environment
	nonces     *nonce.Generator

	// vaultAddress, when non-empty, is framed into every signed action
	// and the submitted request's vaultAddress field. Empty means the
	// action is signed and submitted on the caller's own account.
	vaultAddress string
}

// NewExchangeClient builds an ExchangeClient signing with privKeyHex
// against env (mainnet or testnet).
func NewExchangeClient(http *transport.Client, privKeyHex string, env hlenv.Environment) *ExchangeClient {
	return &ExchangeClient{
		http:       http,
		privKeyHex: privKeyHex,
		env:        env,
		nonces:     nonce.NewGenerator(),
	}
}

// WithVault returns a copy of the client that signs and submits every
// subsequent action on behalf of vaultAddress (a 0x-prefixed 20-byte hex
// address).
func (c *ExchangeClient) WithVault(vaultAddress string) *ExchangeClient {
	clone := *c
	clone.vaultAddress = vaultAddress
	return &clone
}

func decodeVault(addr string) ([]byte, error) {
	if addr == "" {
		return nil, nil
	}
	s := strings.TrimPrefix(addr, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, hlerr.Wrap(hlerr.Signing, "decode vault address", err)
	}
	if len(b) != 20 {
		return nil, hlerr.New(hlerr.Signing, "vault address must be 20 bytes")
	}
	return b, nil
}

// signAndSubmitL1 hashes action, builds and signs the phantom-agent TSD
// payload, and POSTs the signed envelope {action, nonce, signature,
// vaultAddress?, expiresAfter?} to /exchange.
func (c *ExchangeClient) signAndSubmitL1(ctx context.Context, hashAction signer.OrderedMap, wireAction interface{}, expiresAfter *uint64) (OrderResponse, error) {
	vaultBytes, err := decodeVault(c.vaultAddress)
	if err != nil {
		return OrderResponse{}, err
	}

	n := c.nonces.Next()
	sig, err := signer.SignL1Action(c.privKeyHex, hashAction, vaultBytes, n, expiresAfter, c.env)
	if err != nil {
		return OrderResponse{}, err
	}

	body := map[string]interface{}{
		"action":    wireAction,
		"nonce":     n,
		"signature": map[string]interface{}{"r": sig.R, "s": sig.S, "v": sig.V},
	}
	if c.vaultAddress != "" {
		body["vaultAddress"] = c.vaultAddress
	}
	if expiresAfter != nil {
		body["expiresAfter"] = *expiresAfter
	}

	return c.submit(ctx, body)
}

// signAndSubmitUserSigned builds and signs the user-signed TSD payload for
// one of the fixed catalog entries, then POSTs {action, nonce, signature}
// to /exchange. signer.BuildUserSignedPayload adds hyperliquidChain and
// signatureChainId to a copy of action for signing, and the wire body built
// here carries them too; action itself is not modified. actionType is the
// wire-level "type" tag the exchange expects for this action kind.
func (c *ExchangeClient) signAndSubmitUserSigned(ctx context.Context, actionType string, action map[string]interface{}, fields []apitypes.Type, primaryType string) (OrderResponse, error) {
	sig, err := signer.SignUserSignedAction(c.privKeyHex, action, fields, primaryType, c.env)
	if err != nil {
		return OrderResponse{}, err
	}

	wire := make(map[string]interface{}, len(action)+3)
	for k, v := range action {
		wire[k] = v
	}
	wire["type"] = actionType
	wire["signatureChainId"] = hlenv.SignatureChainID
	wire["hyperliquidChain"] = c.env.ChainName()

	body := map[string]interface{}{
		"action":    wire,
		"nonce":     action["nonce"],
		"signature": map[string]interface{}{"r": sig.R, "s": sig.S, "v": sig.V},
	}
	return c.submit(ctx, body)
}

func (c *ExchangeClient) submit(ctx context.Context, body map[string]interface{}) (OrderResponse, error) {
	env, err := c.http.Do(ctx, "POST", "/exchange", body)
	if err != nil {
		return OrderResponse{}, err
	}
	if env.IsError {
		return OrderResponse{}, hlerr.NewClient(strconv.Itoa(env.Code), env.Msg, env.Data)
	}
	var out OrderResponse
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return OrderResponse{}, hlerr.Wrap(hlerr.JSON, "decode exchange response", err)
	}
	return out, nil
}

// Order places one or more orders in a single "order" action.
func (c *ExchangeClient) Order(ctx context.Context, orders []precision.OrderWire, expiresAfter *uint64) (OrderResponse, error) {
	hashOrders := make([]signer.OrderedMap, len(orders))
	for i, o := range orders {
		hashOrders[i] = orderActionOrderedMap(o)
	}
	hashAction := signer.OrderedMap{
		{Key: "type", Value: "order"},
		{Key: "orders", Value: hashOrders},
	}
	wireAction := map[string]interface{}{"type": "order", "orders": orders}
	return c.signAndSubmitL1(ctx, hashAction, wireAction, expiresAfter)
}

// CancelOrders cancels one or more resting orders by asset and order id.
func (c *ExchangeClient) CancelOrders(ctx context.Context, cancels []CancelRequest) (OrderResponse, error) {
	hashCancels := make([]signer.OrderedMap, len(cancels))
	for i, cr := range cancels {
		hashCancels[i] = signer.OrderedMap{{Key: "a", Value: cr.Asset}, {Key: "o", Value: cr.Oid}}
	}
	hashAction := signer.OrderedMap{
		{Key: "type", Value: "cancel"},
		{Key: "cancels", Value: hashCancels},
	}
	wireAction := map[string]interface{}{"type": "cancel", "cancels": cancels}
	return c.signAndSubmitL1(ctx, hashAction, wireAction, nil)
}

// CancelByCloid cancels one or more resting orders by asset and client
// order id.
func (c *ExchangeClient) CancelByCloid(ctx context.Context, cancels []CancelByCloidRequest) (OrderResponse, error) {
	hashCancels := make([]signer.OrderedMap, len(cancels))
	for i, cr := range cancels {
		hashCancels[i] = signer.OrderedMap{{Key: "asset", Value: cr.Asset}, {Key: "cloid", Value: cr.Cloid}}
	}
	hashAction := signer.OrderedMap{
		{Key: "type", Value: "cancelByCloid"},
		{Key: "cancels", Value: hashCancels},
	}
	wireAction := map[string]interface{}{"type": "cancelByCloid", "cancels": cancels}
	return c.signAndSubmitL1(ctx, hashAction, wireAction, nil)
}

// ModifyOrder replaces a resting order's terms in place.
func (c *ExchangeClient) ModifyOrder(ctx context.Context, oid int64, order precision.OrderWire) (OrderResponse, error) {
	hashAction := signer.OrderedMap{
		{Key: "type", Value: "modify"},
		{Key: "oid", Value: oid},
		{Key: "order", Value: orderActionOrderedMap(order)},
	}
	wireAction := map[string]interface{}{"type": "modify", "oid": oid, "order": order}
	return c.signAndSubmitL1(ctx, hashAction, wireAction, nil)
}

// UpdateLeverage sets an asset's leverage and cross/isolated margin mode.
func (c *ExchangeClient) UpdateLeverage(ctx context.Context, req UpdateLeverageRequest) (OrderResponse, error) {
	hashAction := signer.OrderedMap{
		{Key: "type", Value: "updateLeverage"},
		{Key: "asset", Value: req.Asset},
		{Key: "isCross", Value: req.IsCross},
		{Key: "leverage", Value: req.Leverage},
	}
	wireAction := map[string]interface{}{
		"type": "updateLeverage", "asset": req.Asset, "isCross": req.IsCross, "leverage": req.Leverage,
	}
	return c.signAndSubmitL1(ctx, hashAction, wireAction, nil)
}
