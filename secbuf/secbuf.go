// Package secbuf holds private key material in a page-aligned buffer that
// is best-effort memory-locked against swap and zeroed before release.
// Locking is advisory: platforms or permission levels that refuse mlock
// still get the zero-on-release guarantee, just not the no-swap one.
package secbuf

import (
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

const pageSize = 4096

// Buffer is a fixed-length, page-aligned byte buffer. Release zeroes its
// contents, then unlocks, then drops the reference; Release is idempotent.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	locked   bool
	released bool
}

// NewBuffer allocates a buffer sized to the next multiple of the page size
// that is at least n bytes, zero-initializes it, and attempts to page-lock
// it. Locking failures are logged and otherwise ignored — callers still get
// a valid, zeroed buffer.
func NewBuffer(n int) *Buffer {
	size := alignToPage(n)
	b := &Buffer{data: make([]byte, size)}
	if err := unix.Mlock(b.data); err != nil {
		globalLogger.Printf("secbuf: mlock failed, proceeding without memory lock: %v", err)
	} else {
		b.locked = true
	}
	return b
}

func alignToPage(n int) int {
	if n <= 0 {
		return pageSize
	}
	return ((n + pageSize - 1) / pageSize) * pageSize
}

// CopyFrom writes src into the buffer's leading bytes and zeroes the rest.
// src may be any length up to the buffer's page-padded capacity: Buffer does
// not record the length passed to NewBuffer, so a shorter src is accepted
// and callers track their own logical length.
func (b *Buffer) CopyFrom(src []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return fmt.Errorf("secbuf: buffer already released")
	}
	if len(src) > len(b.data) {
		return fmt.Errorf("secbuf: source length %d exceeds buffer capacity %d", len(src), len(b.data))
	}
	n := copy(b.data, src)
	for i := n; i < len(b.data); i++ {
		b.data[i] = 0
	}
	return nil
}

// Bytes returns the buffer's full backing slice. The caller must not
// retain it past Release.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Release zeroes the buffer, unlocks it if it was locked, then drops the
// backing allocation. Safe to call more than once.
func (b *Buffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			globalLogger.Printf("secbuf: munlock failed: %v", err)
		}
	}
	b.data = nil
	b.released = true
}

// PrivateKeySecure wraps a 32-byte secp256k1 private key in a locked
// buffer. Its zero value is not usable; construct with NewPrivateKeySecure
// or FromHex.
type PrivateKeySecure struct {
	buf *Buffer
}

const privateKeyLen = 32

// NewPrivateKeySecure copies raw (exactly 32 bytes) into a fresh locked
// buffer.
func NewPrivateKeySecure(raw []byte) (*PrivateKeySecure, error) {
	if len(raw) != privateKeyLen {
		return nil, fmt.Errorf("secbuf: private key must be %d bytes, got %d", privateKeyLen, len(raw))
	}
	buf := NewBuffer(privateKeyLen)
	if err := buf.CopyFrom(raw); err != nil {
		buf.Release()
		return nil, err
	}
	return &PrivateKeySecure{buf: buf}, nil
}

// FromHex decodes a 0x-prefixed or bare hex string into a PrivateKeySecure.
func FromHex(s string) (*PrivateKeySecure, error) {
	s = trimHexPrefix(s)
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("secbuf: invalid private key hex: %w", err)
	}
	return NewPrivateKeySecure(raw)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// Bytes returns the 32-byte private key. The returned slice aliases the
// locked buffer and must not be retained past Release.
func (k *PrivateKeySecure) Bytes() []byte {
	return k.buf.Bytes()[:privateKeyLen]
}

// Release zeroes and unlocks the underlying buffer.
func (k *PrivateKeySecure) Release() {
	k.buf.Release()
}
