package pretty

import (
	"fmt"
	"strings"
)

// Severity of a reported problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is an error or warning tied to a place in a style or settings file.
type Problem struct {
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
}

// FormatProblem formats a single problem for terminal output. When
// sourceLine is non-empty it is shown below with a caret under Column.
func (s *Styles) FormatProblem(p Problem, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(p.File)
	if p.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", p.Line, p.Column))
	}

	fmt.Fprintf(&builder, "  %s  %s  %s\n", location, s.FormatSeverity(p.Severity), s.Message.Render(p.Message))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, p.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev Severity) string {
	switch sev {
	case SeverityError:
		return s.Error.Render("error")
	case SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	if problemCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d problems)", problemCount))
	}
	return header
}

// SourceLine returns line n (1-based) of src, or "" when out of range.
func SourceLine(src []byte, n int) string {
	if n < 1 {
		return ""
	}
	i := 1
	for line := range strings.Lines(string(src)) {
		if i == n {
			return strings.TrimRight(line, "\r\n")
		}
		i++
	}
	return ""
}
