package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.MD007.options.indent").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int

	// RuleID and Option identify the offending rule option, when there is one.
	RuleID string
	Option string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent use of the config.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown options).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration against the rule catalogue. Unknown
// rules and badly typed option values are errors; options the catalogue
// does not define are warnings.
func Validate(cfg *config.Config, reg *catalog.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for _, ruleID := range cfg.RuleIDs() {
		ruleCfg := cfg.Rules[ruleID]
		field := "rules." + ruleID

		rule, ok := reg.Resolve(ruleID)
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   ruleID,
				Message: fmt.Sprintf("unknown rule %q", ruleID),
				RuleID:  ruleID,
			})
			continue
		}

		for _, name := range sortedKeys(ruleCfg.Options) {
			value := ruleCfg.Options[name]
			optField := field + ".options." + name

			param, known := rule.Param(name)
			if !known {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   optField,
					Value:   value,
					Message: fmt.Sprintf("%s has no option %q", rule.ID, name),
					RuleID:  ruleID,
					Option:  name,
				})
				continue
			}

			if _, err := param.Coerce(value); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   optField,
					Value:   value,
					Message: err.Error(),
					RuleID:  ruleID,
					Option:  name,
				})
			}
		}
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, reg *catalog.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, reg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
