// Package config defines the CLI configuration structure.
//
// The CLI reads its defaults from ~/.transgate/cli.yaml; flags and
// TRANSGATE_* environment variables override the file.
package config
