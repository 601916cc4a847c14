package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// defaultStyleFile is the file init writes.
const defaultStyleFile = ".mdl.rb"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter style file",
		Long: `Create a new .mdl.rb style file in the current directory from one of the
built-in styles. The file can then be edited to exclude rules and tune
their parameters.

Examples:
  mdlstyle init                     Create .mdl.rb from the default style
  mdlstyle init --style relaxed     Start from the relaxed style
  mdlstyle init --output docs.rb    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing style file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultStyleFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	logger := logging.NewInteractive()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	from := global.style
	if from == "" {
		from = configloader.DefaultStyle
	}

	content, ok := style.BuiltinSource(from)
	if !ok {
		return usageErrorf("unknown built-in style %q: must be one of %s",
			from, strings.Join(style.BuiltinNames(), ", "))
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.FileExists(absPath) {
		if !flags.force {
			return usageErrorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created style file", logging.FieldPath, flags.output, logging.FieldStyle, from)
	logger.Info("run 'mdlstyle rules' to see all available rules")
	logger.Info("run 'mdlstyle resolve' to see the effective configuration")

	return nil
}
