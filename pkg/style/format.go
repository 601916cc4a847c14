package style

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Format renders the file in canonical form: one directive per line, single
// quoted arguments and `:key => value` options. Comments are not preserved.
func (f *File) Format() []byte {
	return f.FormatWithHeader("")
}

// FormatWithHeader renders the file preceded by header, which is emitted as
// `#` comment lines.
func (f *File) FormatWithHeader(header string) []byte {
	var buf bytes.Buffer

	if header != "" {
		for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
			line = strings.TrimPrefix(strings.TrimPrefix(line, "#"), " ")
			if line == "" {
				buf.WriteString("#\n")
				continue
			}
			buf.WriteString("# " + line + "\n")
		}
		buf.WriteByte('\n')
	}

	if f == nil {
		return buf.Bytes()
	}

	for _, d := range f.Directives {
		buf.WriteString(d.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// String renders a single directive.
func (d Directive) String() string {
	if d.Kind == KindAll {
		return string(KindAll)
	}

	var b strings.Builder
	b.WriteString(string(d.Kind))
	b.WriteByte(' ')
	b.WriteString(quote(d.Arg))

	for _, opt := range d.Options {
		b.WriteString(", ")
		b.WriteString(FormatValue(Symbol(opt.Key)))
		b.WriteString(" => ")
		b.WriteString(FormatValue(opt.Value))
	}
	return b.String()
}

// FormatValue renders an option value as a style literal.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case string:
		return quote(v)
	case Symbol:
		if isPlainSymbol(string(v)) {
			return ":" + string(v)
		}
		return ":" + quote(string(v))
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case []string:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = quote(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = FormatValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = FormatValue(Symbol(key)) + " => " + FormatValue(v[key])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return quote(fmt.Sprint(v))
	}
}

// quote prefers single quotes. Strings holding control characters are
// double quoted, since single-quoted strings cannot escape them.
func quote(s string) string {
	if strings.ContainsAny(s, "\n\r\t\x00") {
		return `"` + doubleQuoteEscaper.Replace(s) + `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

//nolint:gochecknoglobals // Read-only replacer.
var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`#`, `\#`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\x00", `\0`,
)

func isPlainSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}
