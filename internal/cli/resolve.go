package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
)

// Output formats shared by several commands.
const (
	formatTable    = "table"
	formatText     = "text"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

type resolveFlags struct {
	format      string
	onlyEnabled bool
	overrides   bool
}

// resolvedInfo is one rule in JSON and YAML output.
type resolvedInfo struct {
	ID         string         `json:"id"                   yaml:"id"`
	Aliases    []string       `json:"aliases,omitempty"    yaml:"aliases,omitempty"`
	Tags       []string       `json:"tags"                 yaml:"tags"`
	Enabled    bool           `json:"enabled"              yaml:"enabled"`
	Params     map[string]any `json:"params,omitempty"     yaml:"params,omitempty"`
	Overridden []string       `json:"overridden,omitempty" yaml:"overridden,omitempty"`
	Source     string         `json:"source,omitempty"     yaml:"source,omitempty"`
}

func newResolveCommand(global *globalFlags) *cobra.Command {
	flags := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve [style]",
		Short: "Show the effective rule configuration of a style",
		Long: `Resolve a style against the rule catalogue and print the effective state
and parameters of every rule.

Without an argument the style is taken from --style, MDLSTYLE_STYLE, the
nearest .mdlrc, a project .mdl.rb, or the built-in "default" style.

Examples:
  mdlstyle resolve                        Resolve the project style
  mdlstyle resolve .mdl.rb --overrides    Show only what the style changes
  mdlstyle resolve relaxed --format json  Resolve a built-in style as JSON
  mdlstyle resolve -t headers             Only rules tagged "headers"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var styleArg string
			if len(args) == 1 {
				styleArg = args[0]
			}
			return runResolve(cmd, global, flags, styleArg)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatTable, "output format: table, json, yaml")
	cmd.Flags().BoolVar(&flags.onlyEnabled, "only-enabled", false, "list enabled rules only")
	cmd.Flags().BoolVar(&flags.overrides, "overrides", false, "list only rules the style changes")

	return cmd
}

func runResolve(cmd *cobra.Command, global *globalFlags, flags *resolveFlags, styleArg string) error {
	switch flags.format {
	case formatTable, formatJSON, formatYAML:
	default:
		return usageErrorf("invalid --format %q: must be table, json, or yaml", flags.format)
	}

	result, set, err := global.loadRuleSet(cmd, styleArg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flags.overrides && flags.format != formatTable {
		return encode(out, flags.format, set.Overrides())
	}

	rules := selectRules(set, flags.onlyEnabled, flags.overrides)

	switch flags.format {
	case formatJSON, formatYAML:
		infos := make([]resolvedInfo, 0, len(rules))
		for _, r := range rules {
			infos = append(infos, resolvedInfo{
				ID:         r.ID(),
				Aliases:    r.Rule.Aliases,
				Tags:       r.Rule.Tags,
				Enabled:    r.Enabled,
				Params:     r.Params,
				Overridden: r.Overridden,
				Source:     r.Source.String(),
			})
		}
		return encode(out, flags.format, infos)
	default:
		colorEnabled := pretty.IsColorEnabled(global.color, out)
		styles := pretty.NewStyles(colorEnabled)
		formatter := pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(out))

		fmt.Fprintf(out, "%s %s\n\n", styles.Bold.Render("Style:"), result.StylePath)
		rows := pretty.RowsFromRuleSet(&ruleset.RuleSet{Rules: rules}, config.RuleFormat(global.ruleFormat), false)
		if len(rows) == 0 {
			fmt.Fprintln(out, styles.Dim.Render("No rules selected."))
			return nil
		}
		_, err := io.WriteString(out, formatter.FormatRules(rows, true))
		return err
	}
}

// selectRules narrows a rule set for display.
func selectRules(set *ruleset.RuleSet, onlyEnabled, overridesOnly bool) []*ruleset.ResolvedRule {
	rules := make([]*ruleset.ResolvedRule, 0, len(set.Rules))
	for _, r := range set.Rules {
		if onlyEnabled && !r.Enabled {
			continue
		}
		if overridesOnly && r.Enabled && len(r.Overridden) == 0 {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
