package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests use t.Setenv and cannot run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDLSTYLE_STYLE", "strict")
	t.Setenv("MDLSTYLE_RULES", "~MD013")
	t.Setenv("MDLSTYLE_TAGS", "headers")
	t.Setenv("MDLSTYLE_STRICT", "1")

	settings := &Settings{Style: "docs.rb", StyleBase: "/repo"}
	require.NoError(t, LoadFromEnv(settings))

	assert.Equal(t, "strict", settings.Style)
	assert.Empty(t, settings.StyleBase)
	assert.Equal(t, "~MD013", settings.Rules)
	assert.Equal(t, "headers", settings.Tags)
	assert.True(t, settings.IsStrict())
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("MDLSTYLE_STRICT", "maybe")

	err := LoadFromEnv(&Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDLSTYLE_STRICT")
}

func TestLoadFromEnv_Nil(t *testing.T) {
	assert.NoError(t, LoadFromEnv(nil))
}

func TestLoad_EnvOverridesProject(t *testing.T) {
	dir := newProject(t)
	writeFile(t, dir+"/.mdlrc", "style 'relaxed'\n")
	t.Setenv("MDLSTYLE_STYLE", "strict")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, "builtin:strict", result.StylePath)
}

func TestListEnvVars(t *testing.T) {
	vars := ListEnvVars()
	require.Len(t, vars, 4)
	assert.Equal(t, "MDLSTYLE_RULES", vars[0][0])
	assert.Equal(t, "MDLSTYLE_TAGS", vars[3][0])
}
