package nonce

import "time"

// VerifyNonceAge decodes the top 44 bits of a combined (timestamp/counter/
// rand) nonce as a millisecond timestamp and reports whether it falls
// within maxAgeSeconds of now. It is a defense-in-depth replay filter, not
// a sole authority — the exchange's own nonce-window check is canonical.
func VerifyNonceAge(n uint64, maxAgeSeconds int64) bool {
	ms := int64(n >> 20)
	return withinAge(ms, maxAgeSeconds)
}

// VerifyTimestampNonceAge treats n as a whole microsecond timestamp (the
// form produced by GenerateTimestampNonce) and reports whether it falls
// within maxAgeSeconds of now.
func VerifyTimestampNonceAge(n uint64, maxAgeSeconds int64) bool {
	ms := int64(n) / 1000
	return withinAge(ms, maxAgeSeconds)
}

func withinAge(ms, maxAgeSeconds int64) bool {
	now := time.Now().UnixMilli()
	age := now - ms
	if age < 0 {
		age = -age
	}
	return age <= maxAgeSeconds*1000
}
