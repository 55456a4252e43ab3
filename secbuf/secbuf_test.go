package secbuf

import (
	"bytes"
	"testing"
)

func TestBufferCopyFromExactLength(t *testing.T) {
	b := NewBuffer(32)
	defer b.Release()

	src := bytes.Repeat([]byte{0xAB}, 32)
	if err := b.CopyFrom(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(b.Bytes()[:32], src) {
		t.Fatal("buffer contents do not match source")
	}
}

func TestBufferCopyFromRejectsOversize(t *testing.T) {
	b := NewBuffer(16)
	defer b.Release()

	// pageSize alignment means a "16 byte" buffer has 4096 usable bytes,
	// so oversizing must exceed the full page to trigger the error.
	src := make([]byte, pageSize+1)
	if err := b.CopyFrom(src); err == nil {
		t.Fatal("expected error for oversized source")
	}
}

func TestBufferReleaseZeroes(t *testing.T) {
	b := NewBuffer(32)
	src := bytes.Repeat([]byte{0xFF}, 32)
	if err := b.CopyFrom(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := b.Bytes()
	b.Release()
	for _, byteVal := range data {
		if byteVal != 0 {
			t.Fatal("expected released buffer contents to be zeroed")
		}
	}
}

func TestBufferReleaseIdempotent(t *testing.T) {
	b := NewBuffer(32)
	b.Release()
	b.Release() // must not panic
}

func TestPrivateKeySecureFromHex(t *testing.T) {
	hexKey := "0x" + "11223344556677889900aabbccddeeff11223344556677889900aabbccddee"
	k, err := FromHex(hexKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer k.Release()

	if len(k.Bytes()) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(k.Bytes()))
	}
}

func TestPrivateKeySecureRejectsWrongLength(t *testing.T) {
	if _, err := NewPrivateKeySecure(make([]byte, 16)); err == nil {
		t.Fatal("expected error for wrong-length private key")
	}
}

func TestPrivateKeySecureRejectsInvalidHex(t *testing.T) {
	if _, err := FromHex("0xnothex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}
