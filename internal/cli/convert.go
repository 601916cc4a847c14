package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Conversion source and target formats.
const (
	convertAuto             = "auto"
	convertStyle            = "style"
	convertConfig           = "config"
	convertMarkdownlint     = "markdownlint"
	convertMarkdownlintJSON = "markdownlint-json"
)

type convertFlags struct {
	from   string
	to     string
	output string
	force  bool
}

func newConvertCommand(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert between styles, YAML/JSON configuration, and markdownlint configuration",
		Long: `Convert a style, an mdlstyle YAML or JSON configuration, or a markdownlint
configuration (.markdownlint.json, .markdownlint.yaml, ...) into another of
these formats. The input is resolved against the rule catalogue first, so
rule aliases become IDs and invalid values are reported.

The input format is detected from the file name unless --from is given: .rb
files and built-in style names are styles, files named like .markdownlint.*
are markdownlint configuration, other .yml/.yaml/.json files are mdlstyle
configuration. Styles convert to YAML by default, everything else to a style.

JavaScript markdownlint configuration cannot be converted.

Examples:
  mdlstyle convert .mdl.rb                         Style as YAML on stdout
  mdlstyle convert .mdl.rb --to markdownlint -o .markdownlint.yaml
  mdlstyle convert .markdownlint.json -o .mdl.rb   markdownlint to a style
  mdlstyle convert relaxed --to json               A built-in style as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", convertAuto, "input format: auto, style, config, markdownlint")
	cmd.Flags().StringVar(&flags.to, "to", "",
		"output format: style, yaml, json, markdownlint, markdownlint-json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")

	return cmd
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, input string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	from := flags.from
	if from == convertAuto {
		from = detectInputFormat(input)
	}

	to := flags.to
	if to == "" {
		to = convertStyle
		if from == convertStyle {
			to = formatYAML
		}
		if flags.output != "" {
			to = outputFormatFor(flags.output, to)
		}
	}

	reg := catalog.Default()

	file, warnings, err := loadConvertInput(ctx, from, input, reg)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn(warning)
	}

	set, err := ruleset.Resolve(ctx, file, reg, ruleset.Options{Strict: global.strict})
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}
	logWarnings(logger, set)

	content, err := renderConvertOutput(set.Config(), to, input)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	if fsutil.FileExists(flags.output) {
		if !flags.force {
			return usageErrorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !changed {
		logger.Info("output already up to date", logging.FieldPath, flags.output)
		return nil
	}

	logger.Info("converted", logging.FieldInput, input, logging.FieldOutput, flags.output, logging.FieldFormat, to)
	return nil
}

// detectInputFormat guesses the input format from its name.
func detectInputFormat(input string) string {
	base := strings.ToLower(filepath.Base(input))
	switch {
	case style.IsBuiltin(input) && !fsutil.FileExists(input):
		return convertStyle
	case strings.Contains(base, "markdownlint"):
		return convertMarkdownlint
	}

	switch configloader.DetectConfigFormat(input) {
	case "json", "yaml":
		return convertConfig
	case "javascript":
		return convertMarkdownlint
	default:
		return convertStyle
	}
}

// outputFormatFor picks an output format from the output file name.
func outputFormatFor(path, fallback string) string {
	base := strings.ToLower(filepath.Base(path))
	isJSON := configloader.IsJSONConfig(path)

	switch {
	case strings.Contains(base, "markdownlint") && isJSON:
		return convertMarkdownlintJSON
	case strings.Contains(base, "markdownlint"):
		return convertMarkdownlint
	case isJSON:
		return formatJSON
	case configloader.IsYAMLConfig(path):
		return formatYAML
	case configloader.IsStyleFile(path):
		return convertStyle
	default:
		return fallback
	}
}

// loadConvertInput reads the input as a style. Configuration inputs are
// turned into style directives so every format goes through the resolver.
func loadConvertInput(ctx context.Context, from, input string, reg *catalog.Registry) (*style.File, []string, error) {
	switch from {
	case convertStyle:
		file, _, err := configloader.LoadStyle(ctx, input, "")
		if err != nil {
			return nil, nil, fmt.Errorf("load style: %w", err)
		}
		return file, nil, nil

	case convertMarkdownlint:
		result, err := configloader.ConvertMarkdownlintConfig(ctx, input, reg)
		if err != nil {
			return nil, nil, fmt.Errorf("convert markdownlint config: %w", err)
		}
		return result.Config.ToStyle(input), result.Warnings, nil

	case convertConfig:
		content, err := fsutil.ReadFile(ctx, input)
		if err != nil {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}

		var cfg *config.Config
		if configloader.IsJSONConfig(input) {
			cfg, err = config.FromJSON(content)
		} else {
			cfg, err = config.FromYAML(content)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse config: %w", err)
		}

		validation := configloader.ValidateWithFile(cfg, reg, input)
		if !validation.Valid() {
			errs := make([]error, 0, len(validation.Errors))
			for i := range validation.Errors {
				errs = append(errs, &validation.Errors[i])
			}
			return nil, nil, errors.Join(errs...)
		}
		return cfg.ToStyle(input), nil, nil

	default:
		return nil, nil, usageErrorf("invalid --from %q: must be auto, style, config, or markdownlint", from)
	}
}

func renderConvertOutput(cfg *config.Config, to, input string) ([]byte, error) {
	header := configloader.GenerateMigrationHeader(input)

	switch to {
	case convertStyle:
		return cfg.ToStyle("").FormatWithHeader(header), nil
	case formatYAML:
		return cfg.ToYAMLWithHeader(header)
	case formatJSON:
		return cfg.ToJSON()
	case convertMarkdownlint:
		return cfg.MarshalMarkdownlint(false)
	case convertMarkdownlintJSON:
		return cfg.MarshalMarkdownlint(true)
	default:
		return nil, usageErrorf("invalid --to %q: must be style, yaml, json, markdownlint, or markdownlint-json", to)
	}
}
