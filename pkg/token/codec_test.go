// Package token implements the TransGate activation-token codec.
package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-signing-secret")

func testClaims(expiry time.Time) Claims {
	return Claims{
		Identifier: "user-1",
		Expiry:     expiry,
		Plan:       "basic",
		Nonce:      "n-8f2a91c0",
	}
}

func TestEncodeVerifyRoundTrip(t *testing.T) {
	now := time.Now()
	claims := testClaims(now.Add(30 * 24 * time.Hour))

	tok, err := Encode(claims, testSecret)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	res := VerifyAt(tok, testSecret, now)
	if !res.Valid {
		t.Fatalf("VerifyAt() invalid, reason = %v", res.Reason)
	}
	if res.Claims.Identifier != claims.Identifier {
		t.Errorf("Identifier = %q, want %q", res.Claims.Identifier, claims.Identifier)
	}
	if res.Claims.Plan != claims.Plan {
		t.Errorf("Plan = %q, want %q", res.Claims.Plan, claims.Plan)
	}
	if res.Claims.Nonce != claims.Nonce {
		t.Errorf("Nonce = %q, want %q", res.Claims.Nonce, claims.Nonce)
	}
	if !res.Claims.Expiry.Equal(claims.Expiry) {
		t.Errorf("Expiry = %v, want %v", res.Claims.Expiry, claims.Expiry)
	}
}

func TestEncodeCanonicalExpiry(t *testing.T) {
	// The same instant must always serialize identically regardless of
	// the zone attached to the time value.
	instant := time.Date(2026, 3, 15, 12, 0, 0, 500, time.UTC)
	zoned := instant.In(time.FixedZone("UTC+9", 9*3600))

	a, err := Encode(testClaims(instant), testSecret)
	if err != nil {
		t.Fatalf("Encode(UTC) error = %v", err)
	}
	b, err := Encode(testClaims(zoned), testSecret)
	if err != nil {
		t.Fatalf("Encode(zoned) error = %v", err)
	}
	if a != b {
		t.Error("same instant in different zones produced different tokens")
	}
}

func TestEncodeRejectsDelimiterInClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	tests := []struct {
		name   string
		claims Claims
	}{
		{"identifier", Claims{Identifier: "a|b", Expiry: expiry, Plan: "basic", Nonce: "n"}},
		{"plan", Claims{Identifier: "u1", Expiry: expiry, Plan: "pro|max", Nonce: "n"}},
		{"nonce", Claims{Identifier: "u1", Expiry: expiry, Plan: "basic", Nonce: "n|1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.claims, testSecret); err == nil {
				t.Error("Encode() accepted a claim containing the field delimiter")
			}
		})
	}
}

func TestEncodeRejectsInvalidClaims(t *testing.T) {
	if _, err := Encode(Claims{Identifier: "", Expiry: time.Now(), Plan: "p", Nonce: "n"}, testSecret); err == nil {
		t.Error("Encode() accepted an empty identifier")
	}
	if _, err := Encode(Claims{Identifier: "u1", Plan: "p", Nonce: "n"}, testSecret); err == nil {
		t.Error("Encode() accepted a zero expiry")
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	now := time.Now()
	tok, err := Encode(testClaims(now.Add(time.Hour)), testSecret)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Flip every character of the signature section, one at a time.
	idx := strings.LastIndex(string(decoded), SignatureSeparator)
	for i := idx + 1; i < len(decoded); i++ {
		mutated := make([]byte, len(decoded))
		copy(mutated, decoded)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}

		res := VerifyAt(base64.RawURLEncoding.EncodeToString(mutated), testSecret, now)
		if res.Valid {
			t.Fatalf("tampered signature at offset %d verified", i)
		}
		if res.Reason != ReasonSignatureMismatch {
			t.Fatalf("reason = %v, want %v", res.Reason, ReasonSignatureMismatch)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Now()
	tok, err := Encode(testClaims(now.Add(time.Hour)), []byte("secret-a"))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	res := VerifyAt(tok, []byte("secret-b"), now)
	if res.Valid {
		t.Fatal("token verified under a different secret")
	}
	if res.Reason != ReasonSignatureMismatch {
		t.Errorf("reason = %v, want %v", res.Reason, ReasonSignatureMismatch)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		valid  bool
	}{
		{"exactly now", now, false},
		{"one microsecond past", now.Add(-time.Microsecond), false},
		{"one second ahead", now.Add(time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Encode(testClaims(tt.expiry), testSecret)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			res := VerifyAt(tok, testSecret, now)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (reason %v)", res.Valid, tt.valid, res.Reason)
			}
			if !tt.valid && res.Reason != ReasonExpired {
				t.Errorf("reason = %v, want %v", res.Reason, ReasonExpired)
			}
		})
	}
}

func TestVerifyMalformed(t *testing.T) {
	now := time.Now()

	rawToken := func(raw string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(raw))
	}
	sigFor := func(payload string) string {
		return sign(payload, testSecret)
	}
	expiry := now.Add(time.Hour).UTC().Format(ExpiryLayout)

	tests := []struct {
		name   string
		token  string
		reason Reason
	}{
		{
			name:   "not base64",
			token:  "not!valid*base64~",
			reason: ReasonMalformedEncoding,
		},
		{
			name:   "padded base64",
			token:  base64.URLEncoding.EncodeToString([]byte("u1|x|basic|n.abc")) + "==",
			reason: ReasonMalformedEncoding,
		},
		{
			// No dot anywhere, so there is no separator to split on.
			name:   "no signature separator",
			token:  rawToken("u1|tomorrow|basic|n"),
			reason: ReasonMalformedSignatureSection,
		},
		{
			// The canonical expiry text contains a dot, so a token
			// missing its signature still splits on the last dot and
			// fails the field-count check instead.
			name:   "missing signature with canonical expiry",
			token:  rawToken("u1|" + expiry + "|basic|n"),
			reason: ReasonMalformedPayload,
		},
		{
			name:   "empty signature",
			token:  rawToken("u1|" + expiry + "|basic|n" + SignatureSeparator),
			reason: ReasonMalformedSignatureSection,
		},
		{
			name:   "empty payload",
			token:  rawToken(SignatureSeparator + sigFor("")),
			reason: ReasonMalformedSignatureSection,
		},
		{
			name:   "three payload fields",
			token:  rawToken("u1|" + expiry + "|basic" + SignatureSeparator + sigFor("u1|"+expiry+"|basic")),
			reason: ReasonMalformedPayload,
		},
		{
			name:   "five payload fields",
			token:  rawToken("u1|" + expiry + "|basic|n|extra" + SignatureSeparator + sigFor("u1|"+expiry+"|basic|n|extra")),
			reason: ReasonMalformedPayload,
		},
		{
			name:   "unparseable expiry",
			token:  rawToken("u1|tomorrow|basic|n" + SignatureSeparator + sigFor("u1|tomorrow|basic|n")),
			reason: ReasonInvalidExpiryFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := VerifyAt(tt.token, testSecret, now)
			if res.Valid {
				t.Fatal("malformed token verified")
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", res.Reason, tt.reason)
			}
		})
	}
}

func TestVerifyStructuralChecksPrecedeSignature(t *testing.T) {
	// A token signed under the right secret but with a wrong field
	// count must report the structural failure, not the signature.
	payload := "u1|only-two"
	tok := base64.RawURLEncoding.EncodeToString([]byte(payload + SignatureSeparator + sign(payload, testSecret)))

	res := VerifyAt(tok, testSecret, time.Now())
	if res.Reason != ReasonMalformedPayload {
		t.Errorf("reason = %v, want %v", res.Reason, ReasonMalformedPayload)
	}
}

func TestReasonString(t *testing.T) {
	reasons := map[Reason]string{
		ReasonNone:                      "none",
		ReasonMalformedEncoding:         "malformed_encoding",
		ReasonMalformedSignatureSection: "malformed_signature_section",
		ReasonMalformedPayload:          "malformed_payload",
		ReasonSignatureMismatch:         "signature_mismatch",
		ReasonInvalidExpiryFormat:       "invalid_expiry_format",
		ReasonExpired:                   "expired",
	}
	for r, want := range reasons {
		if got := r.String(); got != want {
			t.Errorf("Reason(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("token-a")
	b := Fingerprint("token-b")

	if len(a) != fingerprintBytes*2 {
		t.Errorf("fingerprint length = %d, want %d", len(a), fingerprintBytes*2)
	}
	if a == b {
		t.Error("distinct tokens produced the same fingerprint")
	}
	if a != Fingerprint("token-a") {
		t.Error("fingerprint is not deterministic")
	}
}
