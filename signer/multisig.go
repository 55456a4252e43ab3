package signer

import (
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"

	"hyperliquid-go-sdk/hlenv"
	"hyperliquid-go-sdk/hlerr"
)

// Envelope is a multi-sig action awaiting enough contributor signatures
// before submission.
type Envelope struct {
	Inner        OrderedMap
	MultiSigUser string
	Nonce        uint64
	VaultAddress string // "" when absent
	Signatures   []string
}

// NewEnvelope starts an append-only multi-sig envelope around inner.
func NewEnvelope(inner OrderedMap, multiSigUser string, nonceValue uint64, vaultAddress string) *Envelope {
	return &Envelope{Inner: inner, MultiSigUser: multiSigUser, Nonce: nonceValue, VaultAddress: vaultAddress}
}

// AddSignature appends a hex-encoded contribution signature.
func (e *Envelope) AddSignature(sigHex string) {
	e.Signatures = append(e.Signatures, sigHex)
}

// HasSufficientSignatures reports whether at least threshold signatures
// have been collected.
func (e *Envelope) HasSufficientSignatures(threshold int) bool {
	return len(e.Signatures) >= threshold
}

// SignContribution serializes the envelope's inner action to canonical
// msgpack bytes, hex-encodes it, builds the multi-sig TSD message with the
// envelope's current signature list, and signs it with privHex. The
// resulting hex signature is returned but not appended — callers append it
// themselves via AddSignature once collected from each signer.
func (e *Envelope) SignContribution(privHex string, env hlenv.Environment) (Signature, error) {
	innerBytes, err := msgpack.Marshal(e.Inner)
	if err != nil {
		return Signature{}, hlerr.Wrap(hlerr.Signing, "serialize inner action", err)
	}
	innerHex := "0x" + hex.EncodeToString(innerBytes)

	payload := BuildMultiSigEnvelopePayload(innerHex, e.MultiSigUser, e.Signatures, e.Nonce, e.VaultAddress, env)
	return SignMessage(privHex, payload)
}
