package pretty

import (
	"fmt"
	"strings"
)

// CheckStats counts the outcome of checking style files.
type CheckStats struct {
	Files    int
	Failed   int
	Errors   int
	Warnings int
}

// FormatCheckSummary formats check statistics as a single line.
// Example: "3 styles checked, 1 failed (2 errors, 1 warning)".
func (s *Styles) FormatCheckSummary(stats CheckStats) string {
	checked := fmt.Sprintf("%d %s checked", stats.Files, plural(stats.Files, "style", "styles"))

	if stats.Failed == 0 && stats.Warnings == 0 {
		return s.Success.Render("No problems found") + s.Dim.Render(" ("+checked+")") + "\n"
	}

	var counts []string
	if stats.Errors > 0 {
		counts = append(counts, s.Error.Render(fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors"))))
	}
	if stats.Warnings > 0 {
		counts = append(counts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}

	line := checked
	if stats.Failed > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.Failed))
	}
	return line + " (" + strings.Join(counts, ", ") + ")\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
