package configloader

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// DefaultStyle is the style used when nothing names one.
const DefaultStyle = "default"

// Settings is the mdl-compatible configuration read from .mdlrc files, the
// environment, and command-line flags.
type Settings struct {
	// Style is a style reference: a path or a built-in style name.
	Style string

	// StyleBase is the directory a relative Style path is resolved against:
	// the directory of the .mdlrc that set it. Empty means the working
	// directory.
	StyleBase string

	// Rules and Tags are comma-separated filters, as mdl's -r and -t.
	Rules string
	Tags  string

	// Strict turns unknown rule options into errors. Nil means unset.
	Strict *bool

	// Extra holds other recognised mdl settings, kept for consumers.
	Extra map[string]any
}

// Filter returns the rule filter described by Rules and Tags.
func (s *Settings) Filter() ruleset.Filter {
	return ruleset.ParseFilter(s.Rules, s.Tags)
}

// IsStrict reports whether strict resolution is on.
func (s *Settings) IsStrict() bool {
	return s.Strict != nil && *s.Strict
}

// settingKind describes how an .mdlrc value is read.
type settingKind int

const (
	settingString settingKind = iota
	settingBool
	settingList
	settingAny
)

// knownSettings lists the .mdlrc keys we understand. mdl's own output and
// traversal keys are preserved in Settings.Extra.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownSettings = map[string]settingKind{
	"style":                  settingString,
	"rules":                  settingList,
	"tags":                   settingList,
	"strict":                 settingBool,
	"verbose":                settingBool,
	"warnings":               settingBool,
	"show_aliases":           settingBool,
	"git_recurse":            settingBool,
	"ignore_front_matter":    settingBool,
	"json":                   settingBool,
	"skip_default_ruleset":   settingBool,
	"show_kramdown_warnings": settingBool,
	"rulesets":               settingList,
	"docs":                   settingAny,
}

// ParseSettings parses .mdlrc content. Unknown keys produce warnings;
// malformed lines and wrongly typed values are errors.
func ParseSettings(name string, data []byte) (*Settings, []string, error) {
	entries, err := style.ParseSettings(name, data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", name, err)
	}

	settings := &Settings{}
	var warnings []string

	for _, entry := range entries {
		kind, known := knownSettings[entry.Key]
		if !known {
			warnings = append(warnings, fmt.Sprintf("%s: unknown setting %q; ignoring", entry.Pos, entry.Key))
			continue
		}

		value, err := settingValue(kind, style.Plain(entry.Value))
		if err != nil {
			return nil, nil, &ValidationError{
				Field:    entry.Key,
				Value:    entry.Value,
				Message:  err.Error(),
				FilePath: entry.Pos.File,
				Line:     entry.Pos.Line,
			}
		}

		switch entry.Key {
		case "style":
			settings.Style, _ = value.(string)
		case "rules":
			settings.Rules, _ = value.(string)
		case "tags":
			settings.Tags, _ = value.(string)
		case "strict":
			strict, _ := value.(bool)
			settings.Strict = &strict
		default:
			if settings.Extra == nil {
				settings.Extra = make(map[string]any)
			}
			settings.Extra[entry.Key] = value
		}
	}

	return settings, warnings, nil
}

func settingValue(kind settingKind, value any) (any, error) {
	switch kind {
	case settingString:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected a string, got %v", value)
	case settingBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("expected true or false, got %v", value)
	case settingList:
		return joinList(value)
	default:
		return value, nil
	}
}

// joinList accepts "a,b", a symbol, or a list and returns "a,b".
func joinList(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return "", fmt.Errorf("expected a list of names, found %v", elem)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("expected a comma-separated list, got %v", value)
	}
}

// LoadSettingsFile reads and parses an .mdlrc file. A relative style path
// in it is anchored to the file's directory.
func LoadSettingsFile(ctx context.Context, path string) (*Settings, []string, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	settings, warnings, err := ParseSettings(path, content)
	if err != nil {
		return nil, nil, err
	}
	if settings.Style != "" {
		settings.StyleBase = filepath.Dir(path)
	}
	return settings, warnings, nil
}

// ExtraKeys returns the keys of Extra in sorted order.
func (s *Settings) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(s.Extra))
}
