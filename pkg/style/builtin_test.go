package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestBuiltinNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"all", "default", "relaxed", "strict"}, style.BuiltinNames())
}

func TestBuiltin_AllParse(t *testing.T) {
	t.Parallel()

	for _, name := range style.BuiltinNames() {
		file, ok := style.Builtin(name)
		require.True(t, ok, name)
		require.NotEmpty(t, file.Directives, name)
		assert.Equal(t, style.KindAll, file.Directives[0].Kind, "%s should start from all rules", name)
		assert.Equal(t, "builtin:"+name, file.Name)
	}
}

func TestBuiltin_Lookup(t *testing.T) {
	t.Parallel()

	_, ok := style.Builtin("RELAXED")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = style.Builtin("relaxed.rb")
	assert.True(t, ok, "extension is optional")

	_, ok = style.Builtin("../parser")
	assert.False(t, ok)

	assert.True(t, style.IsBuiltin("default"))
	assert.False(t, style.IsBuiltin("cirosantilli"))
}
