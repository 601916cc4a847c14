// Package style parses markdown lint style files.
//
// A style file is a short list of directives, one per line, written in the
// Ruby-flavoured syntax popularised by markdownlint (mdl):
//
//	all
//	exclude_rule 'MD013'
//	rule 'MD029', :style => 'ordered'
//	rule 'MD007', indent: 4
//	tag :headers
//	exclude_tag :whitespace
//
// The package only understands the syntax. Deciding what a directive means
// for a concrete rule catalogue is the job of package ruleset.
package style

import "fmt"

// Pos is a position in a style file. Line and Column are 1-based.
type Pos struct {
	File   string
	Line   int
	Column int
}

// String renders the position as file:line:col, omitting empty parts.
func (p Pos) String() string {
	switch {
	case p.File == "" && p.Line == 0:
		return ""
	case p.File == "":
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	case p.Line == 0:
		return p.File
	default:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
}

// IsValid reports whether the position points at a line.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Kind identifies a directive.
type Kind string

// Directive kinds.
const (
	KindAll         Kind = "all"
	KindRule        Kind = "rule"
	KindExcludeRule Kind = "exclude_rule"
	KindTag         Kind = "tag"
	KindExcludeTag  Kind = "exclude_tag"
)

// kindArity lists the directives and whether they take a single argument.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kindArity = map[Kind]bool{
	KindAll:         false,
	KindRule:        true,
	KindExcludeRule: true,
	KindTag:         true,
	KindExcludeTag:  true,
}

// IsKnown reports whether k is a directive the parser accepts.
func (k Kind) IsKnown() bool {
	_, ok := kindArity[k]
	return ok
}

// Symbol is a Ruby symbol literal such as :ordered. Resolution treats it as
// a string; it is kept distinct so formatting can round-trip the source.
type Symbol string

// Option is a single key/value pair attached to a rule directive.
//
// Value holds one of: string, Symbol, int, float64, bool, nil, or a []any
// or map[string]any of those.
type Option struct {
	Key   string
	Value any
	Pos   Pos
}

// Directive is one statement in a style file.
type Directive struct {
	Kind    Kind
	Arg     string
	Options []Option
	Pos     Pos
}

// OptionMap returns the directive's options as a map. Later duplicates win,
// matching how a Ruby hash literal treats repeated keys.
func (d Directive) OptionMap() map[string]any {
	if len(d.Options) == 0 {
		return nil
	}
	out := make(map[string]any, len(d.Options))
	for _, opt := range d.Options {
		out[opt.Key] = opt.Value
	}
	return out
}

// File is a parsed style.
type File struct {
	// Name is the file name used in positions (may be a built-in style name).
	Name string

	// Directives in source order.
	Directives []Directive
}

// SyntaxError describes a malformed style statement.
type SyntaxError struct {
	Pos Pos
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if loc := e.Pos.String(); loc != "" {
		return loc + ": " + e.Msg
	}
	return e.Msg
}

// Plain converts a parsed option value to plain Go values: symbols become
// strings and lists are converted element-wise.
func Plain(value any) any {
	switch v := value.(type) {
	case Symbol:
		return string(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Plain(elem)
		}
		return out
	default:
		return v
	}
}
