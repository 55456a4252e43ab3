package signer

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/vmihailenco/msgpack/v5"

	"hyperliquid-go-sdk/hlerr"
)

// Field is one key/value pair of an action being hashed; OrderedMap
// preserves the caller's field ordering through msgpack serialization,
// since Go's map type has no stable iteration order.
type Field struct {
	Key   string
	Value interface{}
}

// OrderedMap is a named-map action body: a sequence of Fields encoded as a
// canonical msgpack map, not a Go map.
type OrderedMap []Field

var _ msgpack.CustomEncoder = OrderedMap(nil)

// EncodeMsgpack implements msgpack.CustomEncoder, emitting a map-with-keys
// form (not positional/array form) so the serializer matches the
// exchange's named-field hashing convention.
func (m OrderedMap) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(m)); err != nil {
		return err
	}
	for _, f := range m {
		if err := enc.EncodeString(f.Key); err != nil {
			return err
		}
		if err := enc.Encode(f.Value); err != nil {
			return err
		}
	}
	return nil
}

// ToJSON renders m as a plain JSON-marshalable value, recursively
// flattening any nested OrderedMap or []OrderedMap values into
// map[string]interface{} / []interface{}. Field order is irrelevant to
// JSON object semantics, so this is safe to use for the wire body
// alongside the OrderedMap used for hashing.
func (m OrderedMap) ToJSON() map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for _, f := range m {
		out[f.Key] = toJSONValue(f.Value)
	}
	return out
}

func toJSONValue(v interface{}) interface{} {
	switch t := v.(type) {
	case OrderedMap:
		return t.ToJSON()
	case []OrderedMap:
		out := make([]interface{}, len(t))
		for i, m := range t {
			out[i] = m.ToJSON()
		}
		return out
	default:
		return v
	}
}

// ActionHash computes the 32-byte action digest: canonical named-map
// msgpack of action, followed by the big-endian nonce, an optional 20-byte
// vault address framed by a presence byte, and an optional big-endian
// expiry timestamp, all hashed with keccak256. Returns the digest as a
// 0x-prefixed 64-hex-character string.
func ActionHash(action OrderedMap, nonce uint64, vault []byte, expiresAfter *uint64) (string, error) {
	body, err := msgpack.Marshal(action)
	if err != nil {
		return "", hlerr.Wrap(hlerr.Signing, "serialize action", err)
	}

	buf := make([]byte, 0, len(body)+8+21+8)
	buf = append(buf, body...)

	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	buf = append(buf, nonceBuf[:]...)

	if vault != nil {
		if len(vault) != 20 {
			return "", hlerr.New(hlerr.Signing, fmt.Sprintf("vault address must be 20 bytes, got %d", len(vault)))
		}
		buf = append(buf, 0x01)
		buf = append(buf, vault...)
	} else {
		buf = append(buf, 0x00)
	}

	if expiresAfter != nil {
		var expBuf [8]byte
		binary.BigEndian.PutUint64(expBuf[:], *expiresAfter)
		buf = append(buf, expBuf[:]...)
	}

	digest := crypto.Keccak256(buf)
	return "0x" + hex.EncodeToString(digest), nil
}
