package config

import (
	"math"
	"slices"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ToStyle renders the configuration as style directives. Rules are emitted
// in ID order after an optional leading `all`; options are sorted by name.
// A disabled rule that carries options is configured first and then
// excluded, so the options survive a round trip.
func (c *Config) ToStyle(name string) *style.File {
	file := &style.File{Name: name}
	def := c.DefaultEnabled()

	if def {
		file.Directives = append(file.Directives, style.Directive{Kind: style.KindAll})
	}

	for _, id := range c.RuleIDs() {
		rc := c.Rules[id]
		enabled := rc.IsEnabled(def)

		if len(rc.Options) > 0 || (enabled && !def) {
			file.Directives = append(file.Directives, style.Directive{
				Kind:    style.KindRule,
				Arg:     id,
				Options: sortedOptions(rc.Options),
			})
		}
		if !enabled {
			file.Directives = append(file.Directives, style.Directive{
				Kind: style.KindExcludeRule,
				Arg:  id,
			})
		}
	}

	return file
}

func sortedOptions(options map[string]any) []style.Option {
	if len(options) == 0 {
		return nil
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make([]style.Option, 0, len(keys))
	for _, key := range keys {
		out = append(out, style.Option{Key: key, Value: normalizeValue(options[key])})
	}
	return out
}

// normalizeValue turns integral floats (as decoded from JSON) back into ints
// so they render as `4` rather than `4.0`.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < math.MaxInt32 {
			return int(v)
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = normalizeValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = normalizeValue(elem)
		}
		return out
	default:
		return v
	}
}
