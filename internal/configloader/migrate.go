package configloader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
)

// ErrUnsupportedFormat is returned for config files that cannot be converted.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// MigrationResult contains the result of converting a markdownlint config.
type MigrationResult struct {
	// Config is the converted configuration, keyed by canonical rule ID.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original markdownlint config.
	SourcePath string
}

// ConvertMarkdownlintConfig converts a markdownlint config file into a
// Config against the catalogue in reg.
func ConvertMarkdownlintConfig(ctx context.Context, path string, reg *catalog.Registry) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("%w: cannot convert JavaScript config file %q; write a style manually",
			ErrUnsupportedFormat, path)
	}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw, err := config.ParseMarkdownlint(content, IsJSONConfig(path))
	if err != nil {
		return nil, err
	}

	result := ConvertMarkdownlint(raw, reg)
	result.SourcePath = path
	return result, nil
}

// ConvertMarkdownlint converts a decoded markdownlint config. Tags are
// applied before rule keys so an explicit rule setting wins. Options mdl
// does not know, or whose values it would reject, are dropped with a
// warning.
func ConvertMarkdownlint(raw map[string]any, reg *catalog.Registry) *MigrationResult {
	result := &MigrationResult{Config: config.NewConfig()}
	cfg := result.Config

	if def, ok := raw["default"].(bool); ok {
		cfg.Default = config.Bool(def)
	}
	if extends, ok := raw["extends"].(string); ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %q' is not supported; merge that config manually", extends))
	}

	var ruleKeys []string
	for _, key := range sortedKeys(raw) {
		switch key {
		case "default", "extends", "$schema":
			continue
		}

		if _, ok := reg.Resolve(key); ok {
			ruleKeys = append(ruleKeys, key)
			continue
		}

		tag := mdlTag(key)
		if !reg.IsTag(tag) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
			continue
		}
		enabled := valueToBool(raw[key])
		for _, id := range reg.Tagged(tag) {
			cfg.Rules[id] = config.RuleConfig{Enabled: config.Bool(enabled)}
		}
	}

	seen := make(map[string]string, len(ruleKeys))
	for _, key := range ruleKeys {
		rule, _ := reg.Resolve(key)
		if earlier, dup := seen[rule.ID]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%q and %q both refer to %s; using %q", earlier, key, rule.ID, key))
		}
		seen[rule.ID] = key
		cfg.Rules[rule.ID] = convertRuleValue(rule.ID, raw[key], result)
	}

	dropInvalidOptions(cfg, reg, result)
	return result
}

// convertRuleValue converts a markdownlint rule value to a RuleConfig.
func convertRuleValue(ruleID string, value any, result *MigrationResult) config.RuleConfig {
	switch typed := value.(type) {
	case bool:
		return config.RuleConfig{Enabled: config.Bool(typed)}
	case nil:
		return config.RuleConfig{Enabled: config.Bool(false)}
	case map[string]any:
		rc := config.RuleConfig{Enabled: config.Bool(true)}
		if enabled, ok := typed["enabled"].(bool); ok {
			rc.Enabled = config.Bool(enabled)
		}
		for _, key := range sortedKeys(typed) {
			if key == "enabled" {
				continue
			}
			name, keep := mdlOption(ruleID, key)
			if !keep {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s option %q has no mdl equivalent; dropping", ruleID, key))
				continue
			}
			if rc.Options == nil {
				rc.Options = make(map[string]any)
			}
			rc.Options[name] = typed[key]
		}
		return rc
	default:
		return config.RuleConfig{Enabled: config.Bool(valueToBool(value))}
	}
}

// dropInvalidOptions removes options Validate objects to and records why.
func dropInvalidOptions(cfg *config.Config, reg *catalog.Registry, result *MigrationResult) {
	validation := Validate(cfg, reg)

	findings := make([]ValidationError, 0, len(validation.Errors)+len(validation.Warnings))
	findings = append(findings, validation.Errors...)
	findings = append(findings, validation.Warnings...)

	for _, finding := range findings {
		if finding.Option == "" {
			continue
		}
		rc := cfg.Rules[finding.RuleID]
		delete(rc.Options, finding.Option)
		if len(rc.Options) == 0 {
			rc.Options = nil
		}
		cfg.Rules[finding.RuleID] = rc
		result.Warnings = append(result.Warnings, finding.Message+"; dropping")
	}
}

// valueToBool converts various value types to a boolean.
func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

// GenerateMigrationHeader returns a header comment for converted files.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf("mdlstyle configuration\nConverted from: %s\n", filepath.Base(sourcePath))
}

// DetectConfigFormat determines the format of a config file from its name.
func DetectConfigFormat(path string) string {
	switch {
	case IsStyleFile(path):
		return "style"
	case IsJSONConfig(path):
		return "json"
	case IsYAMLConfig(path):
		return "yaml"
	case IsJavaScriptConfig(path):
		return "javascript"
	default:
		return "unknown"
	}
}
