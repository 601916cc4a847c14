package catalog_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
)

func TestDefault_Contents(t *testing.T) {
	t.Parallel()

	reg := catalog.Default()

	assert.Equal(t, 39, reg.Len())
	ids := reg.IDs()
	assert.Equal(t, "MD001", ids[0])
	assert.Equal(t, "MD047", ids[len(ids)-1])
	assert.NotContains(t, ids, "MD008")
	assert.NotContains(t, ids, "MD015")
	assert.NotContains(t, ids, "MD044")
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := catalog.Default()

	tests := []struct {
		key  string
		want string
	}{
		{"MD013", "MD013"},
		{"md013", "MD013"},
		{" MD013 ", "MD013"},
		{"line-length", "MD013"},
		{"Line-Length", "MD013"},
		{"header-increment", "MD001"},
		{"heading-increment", "MD001"},
		{"single-title", "MD025"},
		{"first-line-heading", "MD041"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			rule, ok := reg.Resolve(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.ID)
		})
	}

	_, ok := reg.Resolve("MD999")
	assert.False(t, ok)
	_, ok = reg.Resolve("not-a-rule")
	assert.False(t, ok)
}

func TestRegistry_Tags(t *testing.T) {
	t.Parallel()

	reg := catalog.Default()

	assert.Contains(t, reg.Tags(), "headers")
	assert.Contains(t, reg.Tags(), "whitespace")
	assert.True(t, reg.IsTag(":code"))
	assert.False(t, reg.IsTag("nope"))

	assert.Equal(t, []string{"MD013"}, reg.Tagged("line_length"))
	assert.Equal(t, []string{"MD010"}, reg.Tagged(":hard_tab"))
	assert.Equal(t, []string{"MD018", "MD019", "MD020", "MD021", "MD023"}, reg.Tagged("spaces"))
	assert.Empty(t, reg.Tagged("unknown"))
}

func TestRegistry_ReplaceRule(t *testing.T) {
	t.Parallel()

	reg := catalog.NewRegistry()
	reg.Register(&catalog.Rule{ID: "X001", Aliases: []string{"old"}, Tags: []string{"a"}})
	reg.Register(&catalog.Rule{ID: "X001", Aliases: []string{"new"}, Tags: []string{"b"}})

	_, ok := reg.Resolve("old")
	assert.False(t, ok)
	rule, ok := reg.Resolve("new")
	require.True(t, ok)
	assert.Equal(t, "X001", rule.ID)
	assert.Equal(t, []string{"b"}, reg.Tags())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_AliasesFor(t *testing.T) {
	t.Parallel()

	reg := catalog.Default()
	assert.Equal(t, []string{"header-increment", "heading-increment"}, reg.AliasesFor("MD001"))
	assert.Equal(t, []string{"line-length"}, reg.AliasesFor("MD013"))
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := catalog.NewRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register(&catalog.Rule{ID: "X" + string(rune('A'+i)), Tags: []string{"t"}})
		}()
		go func() {
			defer wg.Done()
			_ = reg.Rules()
			_ = reg.Tagged("t")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, reg.Len())
	assert.Len(t, reg.Tagged("t"), 20)
}

func TestRule_Defaults(t *testing.T) {
	t.Parallel()

	rule, ok := catalog.Default().Resolve("MD013")
	require.True(t, ok)

	defaults := rule.Defaults()
	assert.Equal(t, map[string]any{
		"line_length":        80,
		"ignore_code_blocks": false,
		"code_blocks":        true,
		"tables":             true,
	}, defaults)

	defaults["line_length"] = 120
	assert.Equal(t, 80, rule.Defaults()["line_length"], "defaults must be a fresh copy")
}

func TestRule_FormatID(t *testing.T) {
	t.Parallel()

	rule, ok := catalog.Default().Resolve("MD007")
	require.True(t, ok)

	assert.Equal(t, "MD007", rule.FormatID("id"))
	assert.Equal(t, "ul-indent", rule.FormatID("alias"))
	assert.Equal(t, "MD007/ul-indent", rule.FormatID("combined"))

	bare := &catalog.Rule{ID: "X1"}
	assert.Equal(t, "X1", bare.FormatID("combined"))
}

func TestParam_Coerce(t *testing.T) {
	t.Parallel()

	indent := catalog.Param{Name: "indent", Kind: catalog.KindInt}
	style := catalog.Param{Name: "style", Kind: catalog.KindString, Allowed: []string{"one", "ordered"}}
	flag := catalog.Param{Name: "tables", Kind: catalog.KindBool}
	list := catalog.Param{Name: "names", Kind: catalog.KindList}

	tests := []struct {
		name    string
		param   catalog.Param
		value   any
		want    any
		wantErr bool
	}{
		{"int", indent, 4, 4, false},
		{"int64", indent, int64(4), 4, false},
		{"integral float", indent, 4.0, 4, false},
		{"fractional float", indent, 4.5, nil, true},
		{"string for int", indent, "4", nil, true},
		{"allowed string", style, "ordered", "ordered", false},
		{"disallowed string", style, "zero", nil, true},
		{"int for string", style, 1, nil, true},
		{"bool", flag, true, true, false},
		{"string for bool", flag, "true", nil, true},
		{"list", list, []any{"a", "b"}, []string{"a", "b"}, false},
		{"single string list", list, "a", []string{"a"}, false},
		{"mixed list", list, []any{"a", 1}, nil, true},
		{"nil", flag, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.param.Coerce(tt.value)
			if tt.wantErr {
				require.ErrorIs(t, err, catalog.ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
