// Package token implements the TransGate activation-token codec.
//
// An activation token is a self-contained, tamper-evident credential
// that grants time-boxed access to the translation upstream.
//
// Wire Format:
//
//   - Payload: identifier|expiry|plan|nonce (the | delimiter is
//     forbidden inside any field)
//   - Expiry: fixed-precision UTC timestamp so the same instant always
//     serializes identically
//   - Signature: lowercase-hex HMAC-SHA-256 over the payload bytes
//   - Token: Base64 RawURL encoding of payload.signature
//
// Security:
//
//   - The signature covers exactly the four-field payload
//   - Verification compares signatures in constant time
//   - Structural checks run before the keyed comparison, and the
//     expiry check runs last, so a structurally invalid token never
//     reaches secret-dependent code
//
// Claims are only ever trusted after signature verification succeeds.
package token
