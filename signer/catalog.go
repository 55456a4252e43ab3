// Package signer builds and signs the typed-structured-data messages the
// exchange expects for both L1 actions (orders, cancels, modifies) and
// user-signed actions (transfers, withdrawals, delegations, multi-sig).
package signer

import "github.com/ethereum/go-ethereum/signer/core/apitypes"

// Field lists for every fixed user-signed action catalog entry. Every
// entry carries its own hyperliquidChain string field first, matching the
// augmentation sign_user_signed_action performs before assembly.
var (
	USDSendFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	SpotTransferFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	WithdrawFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}

	USDCClassTransferFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "toPerp", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}

	TokenDelegateFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "validator", Type: "string"},
		{Name: "wei", Type: "string"},
		{Name: "isUndelegate", Type: "bool"},
		{Name: "time", Type: "uint64"},
	}

	ConvertToMultiSigUserFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "authorizedUsers", Type: "string[]"},
		{Name: "threshold", Type: "uint256"},
		{Name: "time", Type: "uint64"},
	}

	MultiSigEnvelopeFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "inner", Type: "bytes"},
		{Name: "multiSigUser", Type: "string"},
		{Name: "signatures", Type: "string[]"},
		{Name: "nonce", Type: "uint64"},
		{Name: "vaultAddress", Type: "string"},
	}

	SendAssetFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "sourceDex", Type: "string"},
		{Name: "destinationDex", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "fromSubAccount", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	UserDEXAbstractionFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "user", Type: "string"},
		{Name: "enabled", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}

	ApproveBuilderFeeFields = []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "maxFeeRate", Type: "string"},
		{Name: "builder", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}

	AgentFields = []apitypes.Type{
		{Name: "source", Type: "string"},
		{Name: "connectionId", Type: "bytes32"},
	}

	eip712DomainFields = []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	}
)

// Primary type names for the fixed user-signed catalogs, as embedded in
// the TSD message's primaryType field.
const (
	PrimaryTypeUSDSend              = "HyperliquidTransaction:UsdSend"
	PrimaryTypeSpotTransfer         = "HyperliquidTransaction:SpotSend"
	PrimaryTypeWithdraw             = "HyperliquidTransaction:Withdraw"
	PrimaryTypeUSDCClassTransfer    = "HyperliquidTransaction:UsdClassTransfer"
	PrimaryTypeTokenDelegate        = "HyperliquidTransaction:TokenDelegate"
	PrimaryTypeConvertToMultiSig    = "HyperliquidTransaction:ConvertToMultiSigUser"
	PrimaryTypeMultiSigEnvelope     = "HyperliquidTransaction:SendMultiSig"
	PrimaryTypeSendAsset            = "HyperliquidTransaction:SendAsset"
	PrimaryTypeUserDEXAbstraction   = "HyperliquidTransaction:UserDexAbstraction"
	PrimaryTypeApproveBuilderFee    = "HyperliquidTransaction:ApproveBuilderFee"
)
