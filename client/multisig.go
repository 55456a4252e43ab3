package client

import (
	"context"

	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/hlerr"
	"hyperliquid-go-sdk/signer"
)

// SubmitMultiSig submits env to /exchange once at least threshold
// contribution signatures have been collected. The wire action mirrors
// the envelope's data model directly: inner action, multiSigUser, nonce,
// optional vaultAddress, and the collected signature list.
func (c *ExchangeClient) SubmitMultiSig(ctx context.Context, env *signer.Envelope, threshold int) (OrderResponse, error) {
	if !env.HasSufficientSignatures(threshold) {
		return OrderResponse{}, hlerr.New(hlerr.Validation, "insufficient multi-sig signatures collected")
	}

	action := map[string]interface{}{
		"type":             "multiSig",
		"signatureChainId": hlenv.SignatureChainID,
		"hyperliquidChain": c.env.ChainName(),
		"inner":            env.Inner.ToJSON(),
		"multiSigUser":     env.MultiSigUser,
		"nonce":            env.Nonce,
		"signatures":       env.Signatures,
	}
	if env.VaultAddress != "" {
		action["vaultAddress"] = env.VaultAddress
	}

	body := map[string]interface{}{
		"action": action,
		"nonce":  env.Nonce,
	}
	if env.VaultAddress != "" {
		body["vaultAddress"] = env.VaultAddress
	}
	return c.submit(ctx, body)
}
