package configloader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/ruleset"
)

func TestParseSettings(t *testing.T) {
	t.Parallel()

	src := `# project settings
style "docs/.mdl.rb"
rules = "MD001,~MD013"
tags ['headers', 'whitespace']
strict true
git_recurse true
rulesets('extra.rb', 'more.rb')
`
	settings, warnings, err := ParseSettings(".mdlrc", []byte(src))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "docs/.mdl.rb", settings.Style)
	assert.Equal(t, "MD001,~MD013", settings.Rules)
	assert.Equal(t, "headers,whitespace", settings.Tags)
	assert.True(t, settings.IsStrict())
	assert.Equal(t, []string{"git_recurse", "rulesets"}, settings.ExtraKeys())
	assert.Equal(t, "extra.rb,more.rb", settings.Extra["rulesets"])

	assert.Equal(t, ruleset.Filter{
		Rules: []string{"MD001", "~MD013"},
		Tags:  []string{"headers", "whitespace"},
	}, settings.Filter())
}

func TestParseSettings_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"style not a string", "style 3\n", "style"},
		{"strict not a bool", "strict 'on'\n", "strict"},
		{"rules list of numbers", "rules [1, 2]\n", "rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := ParseSettings(".mdlrc", []byte(tt.src))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 1, verr.Line)
			assert.Contains(t, err.Error(), ".mdlrc:1: "+tt.field)
		})
	}

	_, _, err := ParseSettings(".mdlrc", []byte("style 'unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestParseSettings_UnknownKey(t *testing.T) {
	t.Parallel()

	settings, warnings, err := ParseSettings("rc", []byte("colour true\n"))
	require.NoError(t, err)
	assert.Nil(t, settings.Extra)
	assert.Equal(t, []string{`rc:1:1: unknown setting "colour"; ignoring`}, warnings)
}
