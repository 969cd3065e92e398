// Package command provides CLI command definitions for TransGate.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command and global flags
//   - activate.go: Token activation command
//   - translate.go: Gated translation command
//   - session.go: Session subcommand group
//   - token.go: Token mint/verify subcommand group
//   - system.go: System subcommand group
//
// Commands follow a consistent pattern of parsing flags,
// calling the server API, and formatting output.
package command
