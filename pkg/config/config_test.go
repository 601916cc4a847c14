package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Style: ".mdl.rb",
		Rules: map[string]config.RuleConfig{
			"MD013": {Enabled: config.Bool(false)},
			"MD029": {Options: map[string]any{"style": "ordered"}},
			"MD024": {Options: map[string]any{"allow_different_nesting": true}},
			"MD007": {Options: map[string]any{"indent": 4}},
		},
	}
}

func TestRuleFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.RuleFormatID.IsValid())
	assert.True(t, config.RuleFormatAlias.IsValid())
	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("name").IsValid())
}

func TestConfig_DefaultEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.True(t, cfg.DefaultEnabled())

	cfg.Default = config.Bool(false)
	assert.False(t, cfg.DefaultEnabled())

	assert.True(t, config.RuleConfig{}.IsEnabled(true))
	assert.False(t, config.RuleConfig{}.IsEnabled(false))
	assert.False(t, config.RuleConfig{Enabled: config.Bool(false)}.IsEnabled(true))
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleConfig()
	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "style: .mdl.rb")
	assert.Contains(t, string(data), "  MD013:\n    enabled: false\n")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestConfig_ToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := sampleConfig().ToYAMLWithHeader("Generated from .mdl.rb\n# keep")
	require.NoError(t, err)
	assert.Regexp(t, `^# Generated from \.mdl\.rb\n# keep\n\nstyle: `, string(data))
}

func TestConfig_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := sampleConfig().ToJSON()
	require.NoError(t, err)

	parsed, err := config.FromJSON(data)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, parsed.Rules["MD007"].Options["indent"], 0)
	assert.False(t, *parsed.Rules["MD013"].Enabled)
}

func TestFromYAML_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Rules)
	assert.True(t, cfg.DefaultEnabled())

	_, err = config.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies rules", func(t *testing.T) {
		t.Parallel()
		original := sampleConfig()
		original.Default = config.Bool(true)

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		*clone.Default = false
		*clone.Rules["MD013"].Enabled = true
		clone.Rules["MD029"].Options["style"] = "one"

		assert.True(t, *original.Default)
		assert.False(t, *original.Rules["MD013"].Enabled)
		assert.Equal(t, "ordered", original.Rules["MD029"].Options["style"])
	})
}

func TestConfig_ToMarkdownlint(t *testing.T) {
	t.Parallel()

	got := sampleConfig().ToMarkdownlint()
	assert.Equal(t, map[string]any{
		"default": true,
		"MD013":   false,
		"MD029":   map[string]any{"style": "ordered"},
		"MD024":   map[string]any{"allow_different_nesting": true},
		"MD007":   map[string]any{"indent": 4},
	}, got)

	cfg := &config.Config{
		Default: config.Bool(false),
		Rules:   map[string]config.RuleConfig{"MD001": {Enabled: config.Bool(true)}},
	}
	assert.Equal(t, map[string]any{"default": false, "MD001": true}, cfg.ToMarkdownlint())
}

func TestConfig_MarshalMarkdownlint(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Rules: map[string]config.RuleConfig{"MD013": {Enabled: config.Bool(false)}}}

	yamlOut, err := cfg.MarshalMarkdownlint(false)
	require.NoError(t, err)
	assert.Equal(t, "MD013: false\ndefault: true\n", string(yamlOut))

	jsonOut, err := cfg.MarshalMarkdownlint(true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"default": true, "MD013": false}`, string(jsonOut))
}

func TestParseMarkdownlint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		isJSON bool
		want   map[string]any
	}{
		{
			name:  "yaml",
			input: "default: true\nMD013: false\nMD007:\n  indent: 4\n",
			want: map[string]any{
				"default": true,
				"MD013":   false,
				"MD007":   map[string]any{"indent": 4},
			},
		},
		{
			name: "json with comments",
			input: `{
  // keep everything
  "default": true,
  /* long lines are fine */
  "MD013": false,
  "url": "http://example.com/a//b"
}`,
			isJSON: true,
			want: map[string]any{
				"default": true,
				"MD013":   false,
				"url":     "http://example.com/a//b",
			},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := config.ParseMarkdownlint([]byte(tt.input), tt.isJSON)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := config.ParseMarkdownlint([]byte("{not json"), true)
	require.Error(t, err)
}

func TestConfig_ToStyle(t *testing.T) {
	t.Parallel()

	got := string(sampleConfig().ToStyle(".mdl.rb").Format())
	want := `all
rule 'MD007', :indent => 4
exclude_rule 'MD013'
rule 'MD024', :allow_different_nesting => true
rule 'MD029', :style => 'ordered'
`
	assert.Equal(t, want, got)
}

func TestConfig_ToStyleDefaultOff(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Default: config.Bool(false),
		Rules: map[string]config.RuleConfig{
			"MD001": {Enabled: config.Bool(true)},
			"MD013": {Enabled: config.Bool(false), Options: map[string]any{"line_length": 120.0}},
			"MD033": {Enabled: config.Bool(true), Options: map[string]any{"allowed_elements": []any{"br"}}},
		},
	}

	got := string(cfg.ToStyle("x").Format())
	want := `rule 'MD001'
rule 'MD013', :line_length => 120
exclude_rule 'MD013'
rule 'MD033', :allowed_elements => ['br']
`
	assert.Equal(t, want, got)
}

func TestConfig_ToStyleReparses(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromJSON([]byte(`{
  "rules": {
    "MD013": {"options": {"extra": {"a": 1, "b": [2.5, "x"]}}},
    "MD026": {"options": {"punctuation": ".\n"}}
  }
}`))
	require.NoError(t, err)

	file, err := style.Parse("converted.rb", cfg.ToStyle("converted.rb").Format())
	require.NoError(t, err)

	options := make(map[string]map[string]any)
	for _, d := range file.Directives {
		if d.Kind == style.KindRule {
			options[d.Arg] = d.OptionMap()
		}
	}

	assert.Equal(t, map[string]any{"a": 1, "b": []any{2.5, "x"}}, options["MD013"]["extra"])
	assert.Equal(t, ".\n", options["MD026"]["punctuation"])
}
