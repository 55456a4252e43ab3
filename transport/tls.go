package transport

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"

	"hyperliquid-go-sdk/hlerr"
)

// PinnedCertVerifier accepts a server only if its leaf certificate is
// byte-for-byte equal to one of a fixed set of DER-encoded certificates.
// Standard chain/signature verification still runs; pinning is an
// additional identity constraint, not a replacement for it.
type PinnedCertVerifier struct {
	pins [][]byte
}

// NewPinnedCertVerifier builds a verifier over the given DER-encoded
// pinned certificates. An empty pin set makes Verify always accept (no
// pinning), matching the default-trust-store behavior.
func NewPinnedCertVerifier(pins [][]byte) *PinnedCertVerifier {
	return &PinnedCertVerifier{pins: pins}
}

// Verify implements the shape of tls.Config.VerifyPeerCertificate: it
// receives the raw leaf certificate bytes (rawCerts[0]) and the chains the
// standard verifier already built, and returns an error if the leaf
// matches none of the pins.
func (v *PinnedCertVerifier) Verify(rawCerts [][]byte, _ [][]*x509.Certificate) error {
	if len(v.pins) == 0 {
		return nil
	}
	if len(rawCerts) == 0 {
		return hlerr.New(hlerr.TLS, "no server certificate presented")
	}
	leaf := rawCerts[0]
	for _, pin := range v.pins {
		if bytes.Equal(leaf, pin) {
			return nil
		}
	}
	return hlerr.New(hlerr.TLS, "server certificate does not match any pinned certificate")
}

// ApplyTo installs the verifier on cfg without disabling Go's own chain
// verification: InsecureSkipVerify stays false and the pin comparison runs
// in VerifyPeerCertificate, which runs after the standard chain
// verification succeeds. An empty pin set leaves cfg unchanged.
func (v *PinnedCertVerifier) ApplyTo(cfg *tls.Config) {
	if len(v.pins) == 0 {
		return
	}
	cfg.VerifyPeerCertificate = func(rawCerts [][]byte, chains [][]*x509.Certificate) error {
		return v.Verify(rawCerts, chains)
	}
}
