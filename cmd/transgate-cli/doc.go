// Package main provides the entry point for transgate-cli.
//
// The CLI tool provides command-line access to a TransGate server for:
//
//   - Token activation and gated translation
//   - Session lookup and revocation
//   - Token minting and local verification
//   - System administration (status, health, sweep)
//
// Usage:
//
//	transgate-cli [command] [flags]
//	transgate-cli activate TOKEN
//	transgate-cli session get user-1 --output json
package main
