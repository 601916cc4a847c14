package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type rulesFlags struct {
	format string
	tag    string
}

// paramInfo represents a rule parameter in JSON output.
type paramInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Default     any      `json:"default"`
	Allowed     []string `json:"allowed,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string      `json:"id"`
	Aliases     []string    `json:"aliases"`
	Tags        []string    `json:"tags"`
	Description string      `json:"description"`
	Params      []paramInfo `json:"params,omitempty"`
}

func newRulesCommand(global *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue",
		Long: `List every rule a style can refer to, with its aliases, tags, and
parameters with their defaults.

The markdown format is a rule reference; html renders the same reference.

Examples:
  mdlstyle rules                        Table of all rules
  mdlstyle rules --tag headers          Rules tagged "headers"
  mdlstyle rules --format html > rules.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, json, markdown, html")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "list only rules with this tag")

	return cmd
}

func runRules(out io.Writer, global *globalFlags, flags *rulesFlags) error {
	reg := catalog.Default()

	rules := reg.Rules()
	if flags.tag != "" {
		if !reg.IsTag(flags.tag) {
			return usageErrorf("unknown tag %q; known tags: %s", flags.tag, strings.Join(reg.Tags(), ", "))
		}
		filtered := rules[:0]
		for _, rule := range rules {
			if rule.HasTag(strings.TrimPrefix(flags.tag, ":")) {
				filtered = append(filtered, rule)
			}
		}
		rules = filtered
	}

	switch flags.format {
	case formatJSON:
		return encode(out, formatJSON, rulesJSON(rules))
	case formatMarkdown:
		_, err := out.Write(rulesMarkdown(rules))
		return err
	case formatHTML:
		return renderHTML(out, rulesMarkdown(rules))
	case formatText, formatTable:
		colorEnabled := pretty.IsColorEnabled(global.color, out)
		formatter := pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), colorEnabled, pretty.TerminalWidth(out))
		rows := pretty.RowsFromCatalog(rules, config.RuleFormat(global.ruleFormat))
		_, err := io.WriteString(out, formatter.FormatRules(rows, false))
		return err
	default:
		return usageErrorf("invalid --format %q: must be text, json, markdown, or html", flags.format)
	}
}

func rulesJSON(rules []*catalog.Rule) []ruleInfo {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		info := ruleInfo{
			ID:          rule.ID,
			Aliases:     rule.Aliases,
			Tags:        rule.Tags,
			Description: rule.Description,
		}
		for _, p := range rule.Params {
			info.Params = append(info.Params, paramInfo{
				Name:        p.Name,
				Kind:        string(p.Kind),
				Default:     p.Default,
				Allowed:     p.Allowed,
				Description: p.Description,
			})
		}
		infos = append(infos, info)
	}
	return infos
}

// rulesMarkdown renders the catalogue as a markdown reference.
func rulesMarkdown(rules []*catalog.Rule) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Rules\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n## %s - %s\n\n", rule.ID, rule.Description)
		fmt.Fprintf(&buf, "Tags: %s\n\n", strings.Join(rule.Tags, ", "))
		if len(rule.Aliases) > 0 {
			fmt.Fprintf(&buf, "Aliases: %s\n\n", strings.Join(rule.Aliases, ", "))
		}

		if len(rule.Params) == 0 {
			continue
		}
		buf.WriteString("| Parameter | Type | Default | Description |\n")
		buf.WriteString("|---|---|---|---|\n")
		for _, p := range rule.Params {
			desc := p.Description
			if len(p.Allowed) > 0 {
				desc += " (" + strings.Join(p.Allowed, ", ") + ")"
			}
			fmt.Fprintf(&buf, "| `%s` | %s | `%s` | %s |\n",
				p.Name, p.Kind, style.FormatValue(p.Default), strings.ReplaceAll(desc, "|", `\|`))
		}
		fmt.Fprintf(&buf, "\nExample: `rule '%s', :%s => %s`\n",
			rule.ID, rule.Params[0].Name, style.FormatValue(rule.Params[0].Default))
	}

	return buf.Bytes()
}

func renderHTML(out io.Writer, markdown []byte) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert(markdown, out); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
