package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Rules: map[string]config.RuleConfig{
		"MD007": {Options: map[string]any{"indent": "four"}},
		"MD013": {Options: map[string]any{"line_length": 100, "colour": "red"}},
		"MD999": {Enabled: config.Bool(false)},
	}}

	result := ValidateWithFile(cfg, catalog.Default(), "mdlstyle.yml")
	require.False(t, result.Valid())
	require.True(t, result.HasWarnings())

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "rules.MD007.options.indent", result.Errors[0].Field)
	assert.Equal(t, "rules.MD999", result.Errors[1].Field)
	assert.Contains(t, result.Errors[1].Error(), `mdlstyle.yml: rules.MD999: unknown rule "MD999"`)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "colour", result.Warnings[0].Option)

	assert.Len(t, result.AllMessages(), 3)
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()

	assert.True(t, Validate(nil, catalog.Default()).Valid())
}
