// Package ruleset resolves a parsed style against a rule catalogue into the
// effective set of rules a linter runs, with their parameters.
package ruleset

import (
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ResolvedRule is the effective state of one catalogue rule.
type ResolvedRule struct {
	Rule    *catalog.Rule
	Enabled bool

	// Params holds every catalogue parameter, with overrides applied, plus
	// any unknown options kept in lenient mode.
	Params map[string]any

	// Overridden lists the parameter names the style set, sorted.
	Overridden []string

	// Source is the position of the last directive that touched the rule.
	Source style.Pos
}

// ID returns the rule ID.
func (r *ResolvedRule) ID() string {
	return r.Rule.ID
}

// Overrides returns only the parameters the style set.
func (r *ResolvedRule) Overrides() map[string]any {
	if len(r.Overridden) == 0 {
		return nil
	}
	out := make(map[string]any, len(r.Overridden))
	for _, name := range r.Overridden {
		out[name] = r.Params[name]
	}
	return out
}

// RuleOverride records how a style changed one rule relative to the
// catalogue baseline of every rule enabled with default parameters.
type RuleOverride struct {
	RuleID  string         `json:"rule_id" yaml:"rule_id"`
	Enabled bool           `json:"enabled" yaml:"enabled"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// RuleSet is the result of resolving a style.
type RuleSet struct {
	// Style is the name of the resolved style file.
	Style string

	// Rules in catalogue (ID) order.
	Rules []*ResolvedRule

	Warnings []Warning
}

// Get returns the resolved rule for an ID. Aliases are not accepted.
func (s *RuleSet) Get(id string) (*ResolvedRule, bool) {
	idx, found := slices.BinarySearchFunc(s.Rules, strings.ToUpper(id), func(r *ResolvedRule, id string) int {
		return strings.Compare(r.Rule.ID, id)
	})
	if !found {
		return nil, false
	}
	return s.Rules[idx], true
}

// Enabled returns the enabled rules in ID order.
func (s *RuleSet) Enabled() []*ResolvedRule {
	var out []*ResolvedRule
	for _, r := range s.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// EnabledIDs returns the IDs of enabled rules.
func (s *RuleSet) EnabledIDs() []string {
	var out []string
	for _, r := range s.Rules {
		if r.Enabled {
			out = append(out, r.Rule.ID)
		}
	}
	return out
}

// Overrides lists the rules whose state differs from the baseline: disabled
// rules, and enabled rules with overridden parameters. Options hold only
// the overridden parameters.
func (s *RuleSet) Overrides() []RuleOverride {
	var out []RuleOverride
	for _, r := range s.Rules {
		options := r.Overrides()
		if r.Enabled && options == nil {
			continue
		}
		out = append(out, RuleOverride{
			RuleID:  r.Rule.ID,
			Enabled: r.Enabled,
			Options: options,
		})
	}
	return out
}

// Config converts the rule set to a serialisable configuration. The default
// state is whichever of enabled or disabled covers more rules, so a style
// built on `all` lists only its exclusions.
func (s *RuleSet) Config() *config.Config {
	enabled := 0
	for _, r := range s.Rules {
		if r.Enabled {
			enabled++
		}
	}
	def := enabled*2 >= len(s.Rules)

	cfg := config.NewConfig()
	cfg.Style = s.Style
	if !def {
		cfg.Default = config.Bool(false)
	}

	for _, r := range s.Rules {
		rc := config.RuleConfig{Options: r.Overrides()}
		if r.Enabled != def {
			rc.Enabled = config.Bool(r.Enabled)
		}
		if rc.Enabled == nil && rc.Options == nil {
			continue
		}
		cfg.Rules[r.Rule.ID] = rc
	}
	return cfg
}
