package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
)

// envVarPrefix is the prefix for all mdlstyle environment variables.
const envVarPrefix = "MDLSTYLE_"

// envMappings maps environment variable names (without prefix) to settings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]struct {
	kind        settingKind
	description string
}{
	"STYLE":  {settingString, "Style file path or built-in style name"},
	"RULES":  {settingList, "Comma-separated rule filter; prefix with ~ to exclude"},
	"TAGS":   {settingList, "Comma-separated tag filter; prefix with ~ to exclude"},
	"STRICT": {settingBool, "Reject unknown rule options: true or false"},
}

// LoadFromEnv applies environment variable overrides to the settings.
// Environment variables are prefixed with MDLSTYLE_ (e.g., MDLSTYLE_STYLE).
func LoadFromEnv(settings *Settings) error {
	if settings == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		switch mapping.kind {
		case settingBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
			}
			settings.Strict = &b
		case settingString:
			settings.Style = value
			settings.StyleBase = ""
		case settingList:
			if suffix == "RULES" {
				settings.Rules = value
			} else {
				settings.Tags = value
			}
		default:
			return fmt.Errorf("unknown field type for %s", envVar)
		}
	}

	return nil
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, suffix)
	}
	slices.Sort(names)

	out := make([][2]string, 0, len(names))
	for _, suffix := range names {
		out = append(out, [2]string{envVarPrefix + suffix, envMappings[suffix].description})
	}
	return out
}
