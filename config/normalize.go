package config

import "strings"

func (c *Config) normalize() {
	c.Exclusions = trimAll(c.Exclusions)
	c.QuarantineFolder = strings.TrimSpace(c.QuarantineFolder)
	c.Rules.ExtraChildFolders = trimAll(c.Rules.ExtraChildFolders)
	c.Rules.ExtraHexExclusions = trimAll(c.Rules.ExtraHexExclusions)
	c.Rules.ExtraValidExtensions = trimAll(c.Rules.ExtraValidExtensions)
	for i, ext := range c.Rules.ExtraValidExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Rules.ExtraValidExtensions[i] = ext
	}
	c.Output.Table = strings.ToLower(strings.TrimSpace(c.Output.Table))
	if c.Output.Table == "" {
		c.Output.Table = TableAuto
	}
}

// trimAll trims every value and drops the blank ones
func trimAll(values []string) []string {
	trimmed := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return trimmed
}
