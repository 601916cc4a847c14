package pretty

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Table formatting constants.
const (
	overriddenSymbol = "*"
	tablePadding     = 2
	minRuleWidth     = 5
	stateWidth       = 5
	minDescWidth     = 20
	heavySeparator   = "="
	stateOn          = "on"
	stateOff         = "off"
)

// ParamCell is one rendered parameter of a rule.
type ParamCell struct {
	Name       string
	Value      string
	Overridden bool
}

// RuleRow represents a single row in the rule table.
type RuleRow struct {
	Rule        string
	Enabled     bool
	Description string
	Params      []ParamCell
}

// RowsFromRuleSet builds table rows from a resolved rule set.
func RowsFromRuleSet(set *ruleset.RuleSet, format config.RuleFormat, onlyEnabled bool) []RuleRow {
	rows := make([]RuleRow, 0, len(set.Rules))
	for _, r := range set.Rules {
		if onlyEnabled && !r.Enabled {
			continue
		}
		rows = append(rows, RuleRow{
			Rule:        r.Rule.FormatID(string(format)),
			Enabled:     r.Enabled,
			Description: r.Rule.Description,
			Params:      paramCells(r.Params, r.Overridden),
		})
	}
	return rows
}

// RowsFromCatalog builds table rows listing catalogue rules with their
// default parameters.
func RowsFromCatalog(rules []*catalog.Rule, format config.RuleFormat) []RuleRow {
	rows := make([]RuleRow, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, RuleRow{
			Rule:        rule.FormatID(string(format)),
			Enabled:     true,
			Description: rule.Description,
			Params:      paramCells(rule.Defaults(), nil),
		})
	}
	return rows
}

func paramCells(params map[string]any, overridden []string) []ParamCell {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	cells := make([]ParamCell, 0, len(names))
	for _, name := range names {
		cells = append(cells, ParamCell{
			Name:       name,
			Value:      style.FormatValue(params[name]),
			Overridden: slices.Contains(overridden, name),
		})
	}
	return cells
}

// TableFormatter formats rules as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	rule int
	desc int
}

// FormatRules formats rows as a table: RULE, STATE, DESCRIPTION, PARAMETERS.
// Parameters come last and are not truncated; the description column
// shrinks to keep the fixed columns within the terminal width.
func (t *TableFormatter) FormatRules(rows []RuleRow, showState bool) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows, showState)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths, showState))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, showState, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, showState))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, showState, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend(rows))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []RuleRow, showState bool) columnWidths {
	widths := columnWidths{rule: minRuleWidth, desc: minDescWidth}

	for _, row := range rows {
		widths.rule = max(widths.rule, len(row.Rule))
		widths.desc = max(widths.desc, len(row.Description))
	}

	// Leave room for a short parameter list after the fixed columns.
	budget := t.termWidth - t.fixedWidth(widths, showState) - minDescWidth
	if budget < 0 {
		widths.desc = max(minDescWidth, widths.desc+budget)
	}

	return widths
}

func (t *TableFormatter) fixedWidth(widths columnWidths, showState bool) int {
	total := 1 + widths.rule + tablePadding + widths.desc + tablePadding
	if showState {
		total += stateWidth + tablePadding
	}
	return total
}

func (t *TableFormatter) formatHeader(widths columnWidths, showState bool) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, " %-*s  ", widths.rule, "RULE")
	if showState {
		fmt.Fprintf(&builder, "%-*s  ", stateWidth, "STATE")
	}
	fmt.Fprintf(&builder, "%-*s  PARAMETERS", widths.desc, "DESCRIPTION")
	return t.styles.TableHeader.Render(builder.String())
}

func (t *TableFormatter) formatSeparator(widths columnWidths, showState bool, char string) string {
	total := min(t.termWidth, t.fixedWidth(widths, showState)+len("PARAMETERS"))
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

func (t *TableFormatter) formatRow(row RuleRow, widths columnWidths, showState bool) string {
	var builder strings.Builder

	builder.WriteString(" ")
	builder.WriteString(t.styles.RuleID.Render(padRight(row.Rule, widths.rule)))
	builder.WriteString("  ")

	if showState {
		state, stateStyle := stateOn, t.styles.Enabled
		if !row.Enabled {
			state, stateStyle = stateOff, t.styles.Disabled
		}
		builder.WriteString(stateStyle.Render(padRight(state, stateWidth)))
		builder.WriteString("  ")
	}

	desc := padRight(truncateString(row.Description, widths.desc), widths.desc)
	if showState && !row.Enabled {
		desc = t.styles.Dim.Render(desc)
	}
	builder.WriteString(desc)
	builder.WriteString("  ")

	parts := make([]string, 0, len(row.Params))
	for _, p := range row.Params {
		cell := p.Name + "=" + p.Value
		if p.Overridden {
			parts = append(parts, t.styles.Overridden.Render(cell+overriddenSymbol))
			continue
		}
		parts = append(parts, t.styles.Dim.Render(cell))
	}
	builder.WriteString(strings.Join(parts, " "))

	return strings.TrimRight(builder.String(), " ")
}

func (t *TableFormatter) formatLegend(rows []RuleRow) string {
	enabled := 0
	for _, row := range rows {
		if row.Enabled {
			enabled++
		}
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" %d rules, %d enabled | %s = set by style",
		len(rows), enabled, overriddenSymbol))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
