// Package tlsroots builds the trusted CA pool for outbound TLS.
//
// It starts from the system trust store and accepts additional PEM
// certificates, then hands the upstream proxy a client TLS config so
// a translation backend behind a private CA can be verified.
package tlsroots
