package client

import (
	"context"

	"hyperliquid-go-sdk/signer"
)

// USDSend transfers USD to destination on the perp account, timestamped
// at the current nonce-generator time.
func (c *ExchangeClient) USDSend(ctx context.Context, destination, amount string) (OrderResponse, error) {
	action := map[string]interface{}{
		"destination": destination,
		"amount":      amount,
		"time":        c.nonces.Next(),
	}
	action["nonce"] = action["time"]
	return c.signAndSubmitUserSigned(ctx, "usdSend", action, signer.USDSendFields, signer.PrimaryTypeUSDSend)
}

// SpotTransfer transfers a spot token to destination.
func (c *ExchangeClient) SpotTransfer(ctx context.Context, destination, token, amount string) (OrderResponse, error) {
	action := map[string]interface{}{
		"destination": destination,
		"token":       token,
		"amount":      amount,
		"time":        c.nonces.Next(),
	}
	action["nonce"] = action["time"]
	return c.signAndSubmitUserSigned(ctx, "spotSend", action, signer.SpotTransferFields, signer.PrimaryTypeSpotTransfer)
}

// Withdraw withdraws USD from the exchange to destination on L1.
func (c *ExchangeClient) Withdraw(ctx context.Context, destination, amount string) (OrderResponse, error) {
	action := map[string]interface{}{
		"destination": destination,
		"amount":      amount,
		"time":        c.nonces.Next(),
	}
	action["nonce"] = action["time"]
	return c.signAndSubmitUserSigned(ctx, "withdraw3", action, signer.WithdrawFields, signer.PrimaryTypeWithdraw)
}

// USDCClassTransfer moves amount between the perp and spot USDC classes.
func (c *ExchangeClient) USDCClassTransfer(ctx context.Context, amount string, toPerp bool) (OrderResponse, error) {
	n := c.nonces.Next()
	action := map[string]interface{}{
		"amount": amount,
		"toPerp": toPerp,
		"nonce":  n,
	}
	return c.signAndSubmitUserSigned(ctx, "usdClassTransfer", action, signer.USDCClassTransferFields, signer.PrimaryTypeUSDCClassTransfer)
}

// TokenDelegate delegates (or undelegates) wei of stake to validator.
func (c *ExchangeClient) TokenDelegate(ctx context.Context, validator, wei string, isUndelegate bool) (OrderResponse, error) {
	action := map[string]interface{}{
		"validator":    validator,
		"wei":          wei,
		"isUndelegate": isUndelegate,
		"time":         c.nonces.Next(),
	}
	action["nonce"] = action["time"]
	return c.signAndSubmitUserSigned(ctx, "tokenDelegate", action, signer.TokenDelegateFields, signer.PrimaryTypeTokenDelegate)
}

// ConvertToMultiSigUser converts the signing account into a multi-sig
// user authorizing authorizedUsers at threshold.
func (c *ExchangeClient) ConvertToMultiSigUser(ctx context.Context, authorizedUsers []string, threshold int) (OrderResponse, error) {
	action := map[string]interface{}{
		"authorizedUsers": authorizedUsers,
		"threshold":       threshold,
		"time":            c.nonces.Next(),
	}
	action["nonce"] = action["time"]
	return c.signAndSubmitUserSigned(ctx, "convertToMultiSigUser", action, signer.ConvertToMultiSigUserFields, signer.PrimaryTypeConvertToMultiSig)
}

// SendAsset moves token between sub-accounts or DEXes.
func (c *ExchangeClient) SendAsset(ctx context.Context, destination, sourceDex, destinationDex, token, amount, fromSubAccount string) (OrderResponse, error) {
	n := c.nonces.Next()
	action := map[string]interface{}{
		"destination":    destination,
		"sourceDex":      sourceDex,
		"destinationDex": destinationDex,
		"token":          token,
		"amount":         amount,
		"fromSubAccount": fromSubAccount,
		"nonce":          n,
	}
	return c.signAndSubmitUserSigned(ctx, "sendAsset", action, signer.SendAssetFields, signer.PrimaryTypeSendAsset)
}

// UserDEXAbstraction enables or disables DEX abstraction for the account.
func (c *ExchangeClient) UserDEXAbstraction(ctx context.Context, user string, enabled bool) (OrderResponse, error) {
	n := c.nonces.Next()
	action := map[string]interface{}{
		"user":    user,
		"enabled": enabled,
		"nonce":   n,
	}
	return c.signAndSubmitUserSigned(ctx, "userDexAbstraction", action, signer.UserDEXAbstractionFields, signer.PrimaryTypeUserDEXAbstraction)
}

// ApproveBuilderFee authorizes builder to charge up to maxFeeRate on
// orders routed through it.
func (c *ExchangeClient) ApproveBuilderFee(ctx context.Context, maxFeeRate, builder string) (OrderResponse, error) {
	n := c.nonces.Next()
	action := map[string]interface{}{
		"maxFeeRate": maxFeeRate,
		"builder":    builder,
		"nonce":      n,
	}
	return c.signAndSubmitUserSigned(ctx, "approveBuilderFee", action, signer.ApproveBuilderFeeFields, signer.PrimaryTypeApproveBuilderFee)
}
