// Package config handles reading and writing the namecheck configuration
// file (.namecheck.toml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".namecheck.toml"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOON = "toon"
)

// Config holds namecheck settings.
type Config struct {
	// Detailed includes rename suggestions in the text report.
	Detailed bool `toml:"detailed"`
	// Output is the stdout format: text, json, yaml or toon.
	Output string `toml:"output,omitempty"`
	// Color enables styled text output.
	Color bool `toml:"color"`
	// Worst lists this many lowest-scoring names in a separate section.
	Worst int `toml:"worst,omitempty"`
	// Exclude holds gitignore-style patterns; matching names are not scored.
	Exclude []string `toml:"exclude,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: FormatText,
		Color:  true,
	}
}

// Path returns the default config path in the working directory.
func Path() string {
	return FileName
}

// LoadFrom reads the config at path. A missing file yields Default().
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !ValidFormat(c.Output) {
		return fmt.Errorf("unsupported output format %q (want %s)", c.Output, strings.Join(Formats(), ", "))
	}
	if c.Worst < 0 {
		return fmt.Errorf("worst must not be negative, got %d", c.Worst)
	}
	return nil
}

const header = `# namecheck configuration. Command-line flags take precedence.
#
# output: text, json, yaml or toon
# worst: list this many lowest-scoring names (0 disables)
# exclude: gitignore-style patterns for names that are never scored, e.g.
#   exclude = ["test_*", "__*__"]

`

// Marshal encodes the config as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Document encodes the config as TOML preceded by a commented header
// describing each setting.
func (c *Config) Document() ([]byte, error) {
	data, err := c.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return append([]byte(header), data...), nil
}

// SaveTo writes the config document to path, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	data, err := c.Document()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExcludeMatcher compiles Exclude into a name predicate. It returns nil when
// no patterns are configured.
func (c *Config) ExcludeMatcher() func(name string) bool {
	if len(c.Exclude) == 0 {
		return nil
	}
	gi := ignore.CompileIgnoreLines(c.Exclude...)
	return gi.MatchesPath
}

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatTOON}
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	for _, v := range Formats() {
		if f == v {
			return true
		}
	}
	return false
}
