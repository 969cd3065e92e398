// Package token implements the TransGate activation-token codec.
package token

import (
	"crypto/hmac"
	"encoding/base64"
	"strings"
	"time"
)

// Reason classifies why a token failed verification. The set is
// closed: every caller is expected to handle each reason explicitly.
type Reason uint8

// Verification failure reasons, in the order the checks run.
const (
	// ReasonNone means the token verified successfully.
	ReasonNone Reason = iota

	// ReasonMalformedEncoding: the token is not valid Base64 RawURL.
	ReasonMalformedEncoding

	// ReasonMalformedSignatureSection: the payload/signature separator
	// is missing, or splitting on it leaves an empty side.
	ReasonMalformedSignatureSection

	// ReasonMalformedPayload: the payload does not split into exactly
	// four fields.
	ReasonMalformedPayload

	// ReasonSignatureMismatch: the provided signature does not match
	// the one recomputed under the verifier's secret.
	ReasonSignatureMismatch

	// ReasonInvalidExpiryFormat: the expiry field does not parse as a
	// timestamp.
	ReasonInvalidExpiryFormat

	// ReasonExpired: the token is well-signed but its expiry is not
	// strictly in the future.
	ReasonExpired
)

// String returns the stable snake_case name of the reason, used in
// logs and metric labels.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMalformedEncoding:
		return "malformed_encoding"
	case ReasonMalformedSignatureSection:
		return "malformed_signature_section"
	case ReasonMalformedPayload:
		return "malformed_payload"
	case ReasonSignatureMismatch:
		return "signature_mismatch"
	case ReasonInvalidExpiryFormat:
		return "invalid_expiry_format"
	case ReasonExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of token verification. When Valid is
// true, Claims holds the verified fields and Reason is ReasonNone;
// otherwise Reason names the failure and Claims is zero.
type Result struct {
	Valid  bool
	Reason Reason
	Claims Claims
}

// invalid builds a failed Result.
func invalid(reason Reason) Result {
	return Result{Reason: reason}
}

// Verify decodes and verifies a token against the secret, using the
// current time for the expiry check.
func Verify(tok string, secret []byte) Result {
	return VerifyAt(tok, secret, time.Now())
}

// VerifyAt decodes and verifies a token against the secret, treating
// now as the present instant.
//
// The check order is fixed: structural checks first, then the keyed
// signature comparison, then expiry. A structurally invalid token
// therefore never reaches secret-dependent code, and an expired but
// well-signed token is distinguishable from a forged one.
func VerifyAt(tok string, secret []byte, now time.Time) Result {
	decoded, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return invalid(ReasonMalformedEncoding)
	}

	// Split on the last separator: the signature is hex and cannot
	// contain one, while payload fields may.
	idx := strings.LastIndex(string(decoded), SignatureSeparator)
	if idx < 0 {
		return invalid(ReasonMalformedSignatureSection)
	}
	payload := string(decoded[:idx])
	providedSig := string(decoded[idx+1:])
	if payload == "" || providedSig == "" {
		return invalid(ReasonMalformedSignatureSection)
	}

	fields := strings.Split(payload, FieldDelimiter)
	if len(fields) != payloadFields {
		return invalid(ReasonMalformedPayload)
	}

	expectedSig := sign(payload, secret)
	if !hmac.Equal([]byte(providedSig), []byte(expectedSig)) {
		return invalid(ReasonSignatureMismatch)
	}

	expiry, err := time.Parse(ExpiryLayout, fields[1])
	if err != nil {
		return invalid(ReasonInvalidExpiryFormat)
	}

	// Expiry is exclusive of the present instant.
	if !expiry.After(now) {
		return invalid(ReasonExpired)
	}

	return Result{
		Valid: true,
		Claims: Claims{
			Identifier: fields[0],
			Expiry:     expiry,
			Plan:       fields[2],
			Nonce:      fields[3],
		},
	}
}
