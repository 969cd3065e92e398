// Package token implements the TransGate activation-token codec.
package token

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// fingerprintBytes is the truncated digest length used for log-safe
// token references.
const fingerprintBytes = 8

// Fingerprint returns a short keyless BLAKE2b digest of a token,
// rendered as lowercase hex.
//
// It exists so rejected tokens can be correlated across log lines
// without ever writing the token, its decoded payload, or either
// signature to the log stream.
func Fingerprint(tok string) string {
	sum := blake2b.Sum256([]byte(tok))
	return hex.EncodeToString(sum[:fingerprintBytes])
}
