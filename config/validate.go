package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks the settings for values the tool cannot work with
func (c *Config) Validate() error {
	var errs []error
	if err := validateFolderName("quarantine_folder", c.QuarantineFolder); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.Rules.ExtraChildFolders {
		if err := validateFolderName("rules.extra_child_folders", name); err != nil {
			errs = append(errs, err)
		}
	}
	for _, ext := range c.Rules.ExtraValidExtensions {
		if len(ext) < 2 || strings.ContainsAny(ext[1:], `./\`) {
			errs = append(errs, fmt.Errorf("rules.extra_valid_extensions: %q is not a file extension", ext))
		}
	}
	for _, pattern := range c.Rules.ExtraHexExclusions {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("rules.extra_hex_exclusions: %q is not a valid glob pattern", pattern))
		}
	}
	switch c.Output.Table {
	case TableAuto, TableBoxed, TablePlain, TableNone:
	default:
		errs = append(errs, fmt.Errorf("output.table: %q must be one of %s, %s, %s or %s",
			c.Output.Table, TableAuto, TableBoxed, TablePlain, TableNone))
	}
	return errors.Join(errs...)
}

func validateFolderName(key, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%s: %q is not a valid folder name", key, name)
	}
	return nil
}
