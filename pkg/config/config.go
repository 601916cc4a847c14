// Package config defines the serialisable form of a resolved style: which
// rules deviate from the default state and with which options.
// These types are pure data; they know nothing about how styles are parsed.
package config

import "slices"

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatID       RuleFormat = "id"       // "MD009"
	RuleFormatAlias    RuleFormat = "alias"    // "no-trailing-spaces"
	RuleFormatCombined RuleFormat = "combined" // "MD009/no-trailing-spaces"
)

// IsValid returns true if the rule format is known.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatID, RuleFormatAlias, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration.
// A nil Enabled means the rule follows Config.Default.
type RuleConfig struct {
	Enabled *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsEnabled reports whether the rule is on, given the config-wide default.
func (rc RuleConfig) IsEnabled(def bool) bool {
	if rc.Enabled == nil {
		return def
	}
	return *rc.Enabled
}

// Config is the root configuration structure.
type Config struct {
	// Style names the style the configuration was derived from, if any.
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Default is the state of rules not listed in Rules. Nil means enabled.
	Default *bool `json:"default,omitempty" yaml:"default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// NewConfig returns an empty Config with every rule enabled by default.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
	}
}

// DefaultEnabled reports the state of rules not listed in Rules.
func (c *Config) DefaultEnabled() bool {
	return c.Default == nil || *c.Default
}

// RuleIDs returns the configured rule IDs in sorted order.
func (c *Config) RuleIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for id := range c.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
