package configloader

import (
	"maps"
	"slices"
)

// markdownlintTags maps markdownlint tag names that differ from mdl's.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintTags = map[string]string{
	"headings": "headers",
	"heading":  "headers",
}

// markdownlintOptions maps markdownlint option names to mdl's, per rule.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintOptions = map[string]map[string]string{
	"MD024": {"siblings_only": "allow_different_nesting"},
	"MD025": {"front_matter_title": ""},
	"MD041": {"front_matter_title": ""},
}

// mdlTag returns the mdl tag for a markdownlint tag name.
func mdlTag(name string) string {
	if tag, ok := markdownlintTags[name]; ok {
		return tag
	}
	return name
}

// mdlOption returns the mdl option name for a markdownlint option, or ""
// when the option has no mdl equivalent and should be dropped.
func mdlOption(ruleID, name string) (string, bool) {
	renames, ok := markdownlintOptions[ruleID]
	if !ok {
		return name, true
	}
	mapped, ok := renames[name]
	if !ok {
		return name, true
	}
	return mapped, mapped != ""
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
