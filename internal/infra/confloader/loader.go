package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix marks the environment variables the loader reads.
const DefaultEnvPrefix = "TRANSGATE_"

// Loader merges configuration from a YAML file and the process
// environment into a koanf tree, then unmarshals it onto a struct
// with koanf tags.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithConfigFile sets the YAML file to load from.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// NewLoader creates a Loader. Without options it reads only the
// environment.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load merges the config file (when set) and then the environment,
// environment winning, and unmarshals the result into target.
func (l *Loader) Load(target any) error {
	if err := l.LoadFile(l.filePath); err != nil {
		return fmt.Errorf("load config file: %w", err)
	}
	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile merges a YAML file into the tree. An empty path is a
// no-op so a file-less deployment works unchanged.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges prefixed environment variables into the tree.
// TRANSGATE_SERVER_HTTP_ADDRESS becomes server.http.address.
func (l *Loader) LoadEnv() error {
	toKey := func(name string) string {
		name = strings.TrimPrefix(name, l.envPrefix)
		return strings.ReplaceAll(strings.ToLower(name), "_", ".")
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", toKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// GetString reads a string value by dotted key.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetBool reads a bool value by dotted key.
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}
