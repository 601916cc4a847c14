package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
)

// cliSettings turns the global flags into the highest-precedence settings
// layer. styleArg, when set, overrides --style.
func (f *globalFlags) cliSettings(cmd *cobra.Command, styleArg string) *configloader.Settings {
	settings := &configloader.Settings{
		Style: f.style,
		Rules: f.rules,
		Tags:  f.tags,
	}
	if styleArg != "" {
		settings.Style = styleArg
	}
	if cmd.Flags().Changed("strict") {
		strict := f.strict
		settings.Strict = &strict
	}
	return settings
}

// loadRuleSet loads settings and the selected style, then resolves it
// against the default catalogue. Loader and resolver warnings are logged.
func (f *globalFlags) loadRuleSet(cmd *cobra.Command, styleArg string) (*configloader.LoadResult, *ruleset.RuleSet, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: f.configPath,
		CLI:          f.cliSettings(cmd, styleArg),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded settings from", logging.FieldPaths, result.LoadedFrom)
	}

	set, err := result.Resolve(ctx, catalog.Default())
	if err != nil {
		return result, nil, fmt.Errorf("resolve %s: %w", result.StylePath, err)
	}
	logWarnings(logger, set)

	return result, set, nil
}

func logWarnings(logger *log.Logger, set *ruleset.RuleSet) {
	for _, warning := range set.Warnings {
		logger.Warn(warning.Message, logging.FieldPos, warning.Pos.String())
	}
}
