package signer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"hyperliquid-go-sdk/hlenv"
)

// l1AgentDomain is the fixed EIP-712 domain used for L1 (order/cancel/
// modify) phantom-agent signing, independent of Environment.
func l1AgentDomain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              "Exchange",
		Version:           "1",
		ChainId:           (*math.HexOrDecimal256)(big.NewInt(1337)),
		VerifyingContract: "0x0000000000000000000000000000000000000000",
	}
}

// userSignedDomain is the fixed EIP-712 domain used for user-signed
// actions (transfers, withdrawals, delegations, multi-sig); it is the same
// for mainnet and testnet since the network distinction lives in the
// action's own hyperliquidChain field, not the domain.
func userSignedDomain() apitypes.TypedDataDomain {
	chainID, _ := new(big.Int).SetString("66eee", 16)
	return apitypes.TypedDataDomain{
		Name:              "HyperliquidSignTransaction",
		Version:           "1",
		ChainId:           (*math.HexOrDecimal256)(chainID),
		VerifyingContract: "0x0000000000000000000000000000000000000000",
	}
}

// PhantomAgent is the L1 action's signed payload: the action hash wrapped
// with a source tag identifying mainnet vs testnet.
type PhantomAgent struct {
	Source       string `json:"source"`
	ConnectionID string `json:"connectionId"`
}

// BuildL1Payload assembles the TSD message for an L1 action: primaryType
// "Agent", types {Agent, EIP712Domain}, message is the phantom agent.
func BuildL1Payload(agent PhantomAgent) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"Agent":         AgentFields,
			"EIP712Domain":  eip712DomainFields,
		},
		PrimaryType: "Agent",
		Domain:      l1AgentDomain(),
		Message: apitypes.TypedDataMessage{
			"source":       agent.Source,
			"connectionId": agent.ConnectionID,
		},
	}
}

// BuildUserSignedPayload assembles the TSD message for a user-signed
// action: the caller's field list and primary type, with the action
// augmented by hyperliquidChain and signatureChainId before assembly.
func BuildUserSignedPayload(action map[string]interface{}, fields []apitypes.Type, primaryType string, env hlenv.Environment) apitypes.TypedData {
	augmented := make(apitypes.TypedDataMessage, len(action)+2)
	for k, v := range action {
		augmented[k] = v
	}
	augmented["hyperliquidChain"] = env.ChainName()
	augmented["signatureChainId"] = hlenv.SignatureChainID

	return apitypes.TypedData{
		Types: apitypes.Types{
			primaryType:    fields,
			"EIP712Domain": eip712DomainFields,
		},
		PrimaryType: primaryType,
		Domain:      userSignedDomain(),
		Message:     augmented,
	}
}

// BuildMultiSigEnvelopePayload assembles the TSD message for a single
// multi-sig contribution signature: the inner action hex, current
// signature list, and nonce/vault, under the fixed multi-sig catalog.
func BuildMultiSigEnvelopePayload(innerHex string, multiSigUser string, signatures []string, nonceValue uint64, vaultAddress string, env hlenv.Environment) apitypes.TypedData {
	sigsAny := make([]interface{}, len(signatures))
	for i, s := range signatures {
		sigsAny[i] = s
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			PrimaryTypeMultiSigEnvelope: MultiSigEnvelopeFields,
			"EIP712Domain":              eip712DomainFields,
		},
		PrimaryType: PrimaryTypeMultiSigEnvelope,
		Domain:      userSignedDomain(),
		Message: apitypes.TypedDataMessage{
			"hyperliquidChain": env.ChainName(),
			"inner":            innerHex,
			"multiSigUser":      multiSigUser,
			"signatures":       sigsAny,
			"nonce":            nonceValue,
			"vaultAddress":     vaultAddress,
		},
	}
}
