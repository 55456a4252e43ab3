package signer

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/hlerr"
	"hyperliquid-go-sdk/secbuf"
)

// Signature is the exchange's (r, s, v) signature shape.
type Signature struct {
	R string
	S string
	V uint8
}

// Hex returns the signature as a single 0x-prefixed hex string: r, then s,
// then the single v byte.
func (s Signature) Hex() string {
	return fmt.Sprintf("0x%s%s%02x", strings.TrimPrefix(s.R, "0x"), strings.TrimPrefix(s.S, "0x"), s.V)
}

// digest computes the EIP-712 signing hash for a TypedData message using
// go-ethereum's real domain-separator + struct-hash encoding — the full
// typed-structured-data digest, not a simplified placeholder.
func digest(message apitypes.TypedData) ([]byte, error) {
	h, _, err := apitypes.TypedDataAndHash(message)
	if err != nil {
		return nil, hlerr.Wrap(hlerr.Signing, "compute typed data hash", err)
	}
	return h, nil
}

// SignMessage signs an assembled TSD message with the given private key
// hex (0x-prefixed or bare), returning (r, s, v=recovery_id+27). Any
// malformed input yields a *hlerr.Error of kind Signing; SignMessage never
// panics.
func SignMessage(privHex string, message apitypes.TypedData) (Signature, error) {
	key, err := secbuf.FromHex(privHex)
	if err != nil {
		return Signature{}, hlerr.Wrap(hlerr.Signing, "decode private key", err)
	}
	defer key.Release()

	h, err := digest(message)
	if err != nil {
		return Signature{}, err
	}

	privKey, err := crypto.ToECDSA(key.Bytes())
	if err != nil {
		return Signature{}, hlerr.Wrap(hlerr.Signing, "parse private key", err)
	}

	sig, err := crypto.Sign(h, privKey)
	if err != nil {
		return Signature{}, hlerr.Wrap(hlerr.Signing, "sign digest", err)
	}
	if len(sig) != 65 {
		return Signature{}, hlerr.New(hlerr.Signing, fmt.Sprintf("unexpected signature length %d", len(sig)))
	}

	return Signature{
		R: "0x" + hex.EncodeToString(sig[:32]),
		S: "0x" + hex.EncodeToString(sig[32:64]),
		V: sig[64] + 27,
	}, nil
}

// SignL1Action computes the action hash, builds the phantom agent and L1
// TSD payload, and signs it.
func SignL1Action(privHex string, action OrderedMap, vault []byte, nonceValue uint64, expiresAfter *uint64, env hlenv.Environment) (Signature, error) {
	h, err := ActionHash(action, nonceValue, vault, expiresAfter)
	if err != nil {
		return Signature{}, err
	}
	agent := PhantomAgent{Source: env.PhantomAgentSource(), ConnectionID: h}
	payload := BuildL1Payload(agent)
	return SignMessage(privHex, payload)
}

// SignUserSignedAction builds the user-signed TSD payload (augmenting
// action with hyperliquidChain/signatureChainId) and signs it.
func SignUserSignedAction(privHex string, action map[string]interface{}, fields []apitypes.Type, primaryType string, env hlenv.Environment) (Signature, error) {
	payload := BuildUserSignedPayload(action, fields, primaryType, env)
	return SignMessage(privHex, payload)
}

// RecoverAddress recovers the signer's 0x-prefixed, lowercase address from
// a TSD message and signature. v may be 0, 1, 27, or 28.
func RecoverAddress(message apitypes.TypedData, sig Signature) (string, error) {
	recID, err := normalizeRecoveryID(sig.V)
	if err != nil {
		return "", err
	}

	rBytes, err := decodeFixed(sig.R, 32, "signature R")
	if err != nil {
		return "", err
	}
	sBytes, err := decodeFixed(sig.S, 32, "signature S")
	if err != nil {
		return "", err
	}

	h, err := digest(message)
	if err != nil {
		return "", err
	}

	full := make([]byte, 65)
	copy(full[:32], rBytes)
	copy(full[32:64], sBytes)
	full[64] = recID

	pub, err := crypto.SigToPub(h, full)
	if err != nil {
		return "", hlerr.Wrap(hlerr.Signing, "recover public key", err)
	}

	addr := crypto.PubkeyToAddress(*pub)
	return strings.ToLower(addr.Hex()), nil
}

// VerifySignature reports whether sig over message recovers to expected,
// comparing case-insensitively.
func VerifySignature(message apitypes.TypedData, sig Signature, expected string) (bool, error) {
	recovered, err := RecoverAddress(message, sig)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(recovered, expected), nil
}

func normalizeRecoveryID(v uint8) (byte, error) {
	switch v {
	case 27, 28:
		return v - 27, nil
	case 0, 1:
		return v, nil
	default:
		return 0, hlerr.New(hlerr.Signing, fmt.Sprintf("invalid recovery id: %d", v))
	}
}

func decodeFixed(s string, n int, label string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, hlerr.Wrap(hlerr.Signing, fmt.Sprintf("invalid %s hex", label), err)
	}
	if len(b) != n {
		return nil, hlerr.New(hlerr.Signing, fmt.Sprintf("%s must be %d bytes, got %d", label, n, len(b)))
	}
	return b, nil
}
