// Package cli provides the Cobra command structure for mdlstyle.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	style      string
	rules      string
	tags       string
	strict     bool
	ruleFormat string
}

// NewRootCommand creates the root mdlstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdlstyle",
		Short: "Resolve and check markdownlint (mdl) style files",
		Long: `mdlstyle reads mdl style files, the small Ruby-like files that select and
tune markdownlint rules, and resolves them against the mdl rule catalogue.

It reports the effective configuration of every rule, checks styles for
unknown rules and bad parameters, lists the catalogue, and converts between
style files, YAML/JSON configuration, and markdownlint configuration.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.debug {
				logging.SetLevel("debug")
			}
			if !config.RuleFormat(flags.ruleFormat).IsValid() {
				return usageErrorf("invalid --rule-format %q: must be id, alias, or combined", flags.ruleFormat)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "path to an .mdlrc settings file")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVarP(&flags.style, "style", "s", "", "style file or built-in style name")
	pf.StringVarP(&flags.rules, "rules", "r", "", "only these rules (comma separated, ~ to exclude)")
	pf.StringVarP(&flags.tags, "tags", "t", "", "only rules with these tags (comma separated, ~ to exclude)")
	pf.BoolVar(&flags.strict, "strict", false, "reject rule options the catalogue does not define")
	pf.StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatID),
		"rule identifier format in output: id, alias, or combined")

	rootCmd.AddCommand(newResolveCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newRulesCommand(flags))
	rootCmd.AddCommand(newConvertCommand(flags))
	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageError marks an invalid command line.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}
