// Package config loads the optional TOML settings file of ddda-modfix
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/m-manu/ddda-modfix/checker"
	"github.com/m-manu/ddda-modfix/rules"
	"github.com/pelletier/go-toml/v2"
)

// Rules extends the built-in layout conventions
type Rules struct {
	ExtraValidExtensions []string `toml:"extra_valid_extensions"`
	ExtraChildFolders    []string `toml:"extra_child_folders"`
	ExtraHexExclusions   []string `toml:"extra_hex_exclusions"`
}

// Output controls how results are printed
type Output struct {
	// Table is one of "auto" (boxed on a terminal, plain otherwise), "boxed", "plain" or "none"
	Table string `toml:"table"`
}

// Config is the full settings file
type Config struct {
	// Exclusions are file/directory names ignored while loading a mod, added to the defaults
	Exclusions       []string `toml:"exclusions"`
	QuarantineFolder string   `toml:"quarantine_folder"`
	Rules            Rules    `toml:"rules"`
	Output           Output   `toml:"output"`
}

// Table styles accepted in Output.Table
const (
	TableAuto  = "auto"
	TableBoxed = "boxed"
	TablePlain = "plain"
	TableNone  = "none"
)

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		QuarantineFolder: checker.DefaultQuarantineName,
		Output:           Output{Table: TableAuto},
	}
}

// Load reads the settings file at path on top of the defaults. An empty path yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %q does not exist", path)
		} else if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RuleOverrides converts the [rules] section for rules.New
func (c *Config) RuleOverrides() rules.Overrides {
	return rules.Overrides{
		ExtraValidExtensions: c.Rules.ExtraValidExtensions,
		ExtraChildFolders:    c.Rules.ExtraChildFolders,
		ExtraHexExclusions:   c.Rules.ExtraHexExclusions,
	}
}
