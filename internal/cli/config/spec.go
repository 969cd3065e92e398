package config

// CLIConfig is the configuration for transgate-cli.
type CLIConfig struct {
	// DefaultServer is the server address used when no --server flag
	// is given.
	DefaultServer string `yaml:"default_server"`

	// DefaultOutput is the output format (table, json, yaml).
	DefaultOutput string `yaml:"default_output"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "http://127.0.0.1:6080",
		DefaultOutput: "table",
	}
}
