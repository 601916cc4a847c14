package style_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// sampleStyle mirrors a typical project style file, comments included.
const sampleStyle = `# Enable all rules by default
all

# Allow any line length
exclude_rule 'MD013'

# Allow ordered lists
rule 'MD029', :style => 'ordered'

# Allow nesting to permit similar headers as in CHANGELOG.md
rule 'MD024', :allow_different_nesting => true

# Use 4-space indents
rule 'MD007', :indent => 4`

func TestParse_SampleStyle(t *testing.T) {
	t.Parallel()

	file, err := style.Parse(".mdl.rb", []byte(sampleStyle))
	require.NoError(t, err)
	require.Len(t, file.Directives, 5)

	want := []struct {
		kind    style.Kind
		arg     string
		options map[string]any
		line    int
	}{
		{kind: style.KindAll, line: 2},
		{kind: style.KindExcludeRule, arg: "MD013", line: 5},
		{kind: style.KindRule, arg: "MD029", options: map[string]any{"style": "ordered"}, line: 8},
		{kind: style.KindRule, arg: "MD024", options: map[string]any{"allow_different_nesting": true}, line: 11},
		{kind: style.KindRule, arg: "MD007", options: map[string]any{"indent": 4}, line: 14},
	}

	for i, w := range want {
		got := file.Directives[i]
		assert.Equal(t, w.kind, got.Kind, "directive %d kind", i)
		assert.Equal(t, w.arg, got.Arg, "directive %d arg", i)
		assert.Equal(t, w.options, got.OptionMap(), "directive %d options", i)
		assert.Equal(t, w.line, got.Pos.Line, "directive %d line", i)
		assert.Equal(t, 1, got.Pos.Column, "directive %d column", i)
		assert.Equal(t, ".mdl.rb", got.Pos.File)
	}
}

func TestParse_Syntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		kind    style.Kind
		arg     string
		options map[string]any
	}{
		{
			name: "parenthesised call",
			src:  `exclude_rule("MD013")`,
			kind: style.KindExcludeRule, arg: "MD013",
		},
		{
			name: "symbol argument",
			src:  `tag :headers`,
			kind: style.KindTag, arg: "headers",
		},
		{
			name: "ruby 1.9 hash keys",
			src:  `rule 'MD007', indent: 4, start_indented: true`,
			kind: style.KindRule, arg: "MD007",
			options: map[string]any{"indent": 4, "start_indented": true},
		},
		{
			name: "braced hash",
			src:  `rule 'MD044', { :names => ['JavaScript', "GitHub"] }`,
			kind: style.KindRule, arg: "MD044",
			options: map[string]any{"names": []any{"JavaScript", "GitHub"}},
		},
		{
			name: "string keys and symbol values",
			src:  `rule 'MD003', 'style' => :atx`,
			kind: style.KindRule, arg: "MD003",
			options: map[string]any{"style": style.Symbol("atx")},
		},
		{
			name: "multi-line call with trailing comma",
			src:  "rule('MD030',\n  :ul_single => 1,\n  :ol_single => 2,\n)",
			kind: style.KindRule, arg: "MD030",
			options: map[string]any{"ul_single": 1, "ol_single": 2},
		},
		{
			name: "continuation after comma",
			src:  "rule 'MD013',\n  :line_length => 1_000",
			kind: style.KindRule, arg: "MD013",
			options: map[string]any{"line_length": 1000},
		},
		{
			name: "float and nil values",
			src:  `rule 'MD999', :ratio => 0.5, :other => nil`,
			kind: style.KindRule, arg: "MD999",
			options: map[string]any{"ratio": 0.5, "other": nil},
		},
		{
			name: "negative integer",
			src:  `rule 'MD999', :n => -3`,
			kind: style.KindRule, arg: "MD999",
			options: map[string]any{"n": -3},
		},
		{
			name: "trailing comment and escaped quote",
			src:  `rule 'MD026', :punctuation => '.,\'' # no trailing punctuation`,
			kind: style.KindRule, arg: "MD026",
			options: map[string]any{"punctuation": ".,'"},
		},
		{
			name: "double quoted escapes",
			src:  `rule 'MD999', :s => "a\tb"`,
			kind: style.KindRule, arg: "MD999",
			options: map[string]any{"s": "a\tb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file, err := style.Parse("test.rb", []byte(tt.src))
			require.NoError(t, err)
			require.Len(t, file.Directives, 1)

			got := file.Directives[0]
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.arg, got.Arg)
			assert.Equal(t, tt.options, got.OptionMap())
		})
	}
}

func TestParse_SemicolonsAndBlankLines(t *testing.T) {
	t.Parallel()

	file, err := style.Parse("x", []byte("\n\n  all; exclude_rule 'MD001'\r\n\r\n"))
	require.NoError(t, err)
	require.Len(t, file.Directives, 2)
	assert.Equal(t, style.KindAll, file.Directives[0].Kind)
	assert.Equal(t, "MD001", file.Directives[1].Arg)
	assert.Equal(t, 3, file.Directives[0].Pos.Line)
	assert.Equal(t, 3, file.Directives[0].Pos.Column)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	file, err := style.Parse("empty", []byte("# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, file.Directives)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		line    int
		column  int
		message string
	}{
		{name: "unknown directive", src: "all\nenable 'MD001'", line: 2, column: 1, message: `unknown directive "enable"`},
		{name: "missing argument", src: "exclude_rule", line: 1, column: 13, message: "expected rule or tag name"},
		{name: "options on exclude", src: "exclude_rule 'MD001', :a => 1", line: 1, column: 21, message: "takes a single argument"},
		{name: "missing arrow", src: "rule 'MD029', :style 'x'", line: 1, column: 22, message: "expected '=>'"},
		{name: "unterminated string", src: "rule 'MD029", line: 1, column: 6, message: "unterminated string"},
		{name: "interpolation", src: `rule "#{x}"`, line: 1, column: 6, message: "interpolation"},
		{name: "unclosed paren", src: "exclude_rule('MD001'", line: 1, column: 21, message: "expected ')'"},
		{name: "bare identifier value", src: "rule 'MD029', :style => ordered", line: 1, column: 25, message: `unsupported value "ordered"`},
		{name: "all with argument", src: "all 'MD001'", line: 1, column: 5, message: "expected end of line"},
		{name: "stray character", src: "all\n@", line: 2, column: 1, message: "unexpected character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := style.Parse("bad.rb", []byte(tt.src))
			require.Error(t, err)

			errs := style.SyntaxErrors(err)
			require.NotEmpty(t, errs)
			first := errs[0]
			assert.Equal(t, tt.line, first.Pos.Line, "line for %v", first)
			assert.Equal(t, tt.column, first.Pos.Column, "column for %v", first)
			assert.Contains(t, first.Error(), tt.message)
			assert.Contains(t, first.Error(), "bad.rb:")
		})
	}
}

func TestParse_ReportsEveryBadLine(t *testing.T) {
	t.Parallel()

	src := "all\nfoo\nexclude_rule 'MD001'\nbar 'x'\n"
	_, err := style.Parse("multi.rb", []byte(src))
	require.Error(t, err)

	errs := style.SyntaxErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Pos.Line)
	assert.Equal(t, 4, errs[1].Pos.Line)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".mdl.rb")
	require.NoError(t, os.WriteFile(path, []byte(sampleStyle), 0o644))

	file, err := style.ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Name)
	assert.Len(t, file.Directives, 5)

	_, err = style.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.rb"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestParseSettings(t *testing.T) {
	t.Parallel()

	src := `style "#{File.dirname(__FILE__)}/.mdl.rb"`
	_, err := style.ParseSettings(".mdlrc", []byte(src))
	require.Error(t, err, "interpolated paths are rejected")

	src = `style "docs/.mdl.rb"
rules = "MD001,~MD013"
tags 'headers', 'ul'
git_recurse true
verbose(false)
`
	settings, err := style.ParseSettings(".mdlrc", []byte(src))
	require.NoError(t, err)
	require.Len(t, settings, 5)

	assert.Equal(t, "style", settings[0].Key)
	assert.Equal(t, "docs/.mdl.rb", settings[0].Value)
	assert.Equal(t, "MD001,~MD013", settings[1].Value)
	assert.Equal(t, []any{"headers", "ul"}, settings[2].Value)
	assert.Equal(t, true, settings[3].Value)
	assert.Equal(t, false, settings[4].Value)
	assert.Equal(t, 5, settings[4].Pos.Line)
}

func TestPlain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "atx", style.Plain(style.Symbol("atx")))
	assert.Equal(t, []any{"a", 1}, style.Plain([]any{style.Symbol("a"), 1}))
	assert.Equal(t, true, style.Plain(true))
}

func TestParse_NestedHash(t *testing.T) {
	t.Parallel()

	src := "rule 'MD013', :extra => { :a => 1, b: {\n c: 'x',\n} }\n"
	file, err := style.Parse("nested.rb", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Directives, 1)

	want := map[string]any{"a": 1, "b": map[string]any{"c": "x"}}
	assert.Equal(t, want, file.Directives[0].OptionMap()["extra"])
}

func TestParse_ByteOrderMark(t *testing.T) {
	t.Parallel()

	src := append([]byte{0xEF, 0xBB, 0xBF}, "all\nexclude_rule 'MD013'\n"...)
	file, err := style.Parse("bom.rb", src)
	require.NoError(t, err)
	require.Len(t, file.Directives, 2)
	assert.Equal(t, style.Pos{File: "bom.rb", Line: 1, Column: 1}, file.Directives[0].Pos)
}
