// Package token implements the TransGate activation-token codec.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Codec constants.
const (
	// FieldDelimiter separates the four claim fields inside the payload.
	// It must not appear inside identifier, plan, or nonce.
	FieldDelimiter = "|"

	// SignatureSeparator separates the payload from its detached
	// signature. The signature is lowercase hex, so the separator can
	// never appear inside it.
	SignatureSeparator = "."

	// ExpiryLayout is the canonical expiry serialization: fixed
	// nanosecond precision, always formatted from UTC. Required for
	// signature stability: the same instant must always serialize to
	// the same bytes.
	ExpiryLayout = "2006-01-02T15:04:05.000000000Z07:00"

	// payloadFields is the exact field count of a well-formed payload.
	payloadFields = 4
)

// Claims are the structured fields carried inside an activation token.
// Claims parsed from a token are only trusted after Verify succeeds.
type Claims struct {
	// Identifier names the holder. Opaque, non-empty.
	Identifier string

	// Expiry is the absolute instant the token stops being valid.
	// Validity is exclusive of the present instant: a token whose
	// expiry equals "now" is already expired.
	Expiry time.Time

	// Plan is an opaque label describing the holder's entitlement.
	Plan string

	// Nonce is caller-supplied randomness. Uniqueness is not enforced
	// by the codec; the nonce is only carried through the signature.
	Nonce string
}

// Validate checks the codec's input constraints on the claims.
// A violation is a caller bug, not untrusted input.
func (c Claims) Validate() error {
	if c.Identifier == "" {
		return errors.New("identifier must not be empty")
	}
	if c.Expiry.IsZero() {
		return errors.New("expiry must be a valid instant")
	}
	for _, f := range []struct{ name, value string }{
		{"identifier", c.Identifier},
		{"plan", c.Plan},
		{"nonce", c.Nonce},
	} {
		if strings.Contains(f.value, FieldDelimiter) {
			return fmt.Errorf("%s contains the field delimiter %q", f.name, FieldDelimiter)
		}
	}
	return nil
}

// Encode builds a signed activation token from the claims.
//
// The only error path for constrained inputs is a claims validation
// failure; encoding itself cannot fail.
func Encode(claims Claims, secret []byte) (string, error) {
	if err := claims.Validate(); err != nil {
		return "", err
	}

	payload := strings.Join([]string{
		claims.Identifier,
		claims.Expiry.UTC().Format(ExpiryLayout),
		claims.Plan,
		claims.Nonce,
	}, FieldDelimiter)

	sig := sign(payload, secret)

	return base64.RawURLEncoding.EncodeToString([]byte(payload + SignatureSeparator + sig)), nil
}

// sign computes the lowercase-hex HMAC-SHA-256 of the payload.
func sign(payload string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
