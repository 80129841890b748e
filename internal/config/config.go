// Package config loads the optional tagverify configuration file.
//
// The file holds defaults for command line flags:
//
//	tag-file: rules.csv
//	output: text
//	wav: true
//	jobs: 4
//	log:
//	  level: debug
//
// Values given on the command line or in the environment win over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/simonhull/tagverify/internal/types"
)

// ErrInvalidConfig is matched by every configuration error.
var ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", types.ErrSetup)

// Log holds logging settings.
type Log struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

// Config mirrors the command line flags. Nil fields are unset.
type Config struct {
	TagFile    *string `yaml:"tag-file"`
	Folder     *string `yaml:"folder"`
	Verbose    *bool   `yaml:"verbose"`
	OutputFile *bool   `yaml:"output-file"`
	Output     *string `yaml:"output"`
	NoColor    *bool   `yaml:"no-color"`
	WAV        *bool   `yaml:"wav"`
	Jobs       *int    `yaml:"jobs"`
	Aliases    *string `yaml:"aliases"`
	Log        Log     `yaml:"log"`
}

// GetPath returns the default configuration file path.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "tagverify", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "tagverify", "config.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "tagverify", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpConfig
}

// Load reads the configuration file at path. A missing file yields an
// empty configuration unless required is set.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config file", slog.String("path", path))
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))

	return cfg, nil
}

// Parse decodes configuration data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w:\n%s", ErrInvalidConfig, yaml.FormatError(err, false, true))
	}

	if cfg.Jobs != nil && *cfg.Jobs < 1 {
		return nil, fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidConfig, *cfg.Jobs)
	}

	return cfg, nil
}

// FlagValues returns the set values keyed by flag name, formatted for
// [pflag.Value.Set].
func (c *Config) FlagValues() map[string]string {
	out := make(map[string]string)

	str := func(name string, v *string) {
		if v != nil {
			out[name] = *v
		}
	}
	boolean := func(name string, v *bool) {
		if v != nil {
			out[name] = strconv.FormatBool(*v)
		}
	}

	str("tag-file", c.TagFile)
	str("folder", c.Folder)
	boolean("verbose", c.Verbose)
	boolean("output-file", c.OutputFile)
	str("output", c.Output)
	boolean("no-color", c.NoColor)
	boolean("wav", c.WAV)
	if c.Jobs != nil {
		out["jobs"] = strconv.Itoa(*c.Jobs)
	}
	str("aliases", c.Aliases)
	str("log-level", c.Log.Level)
	str("log-format", c.Log.Format)

	return out
}
