package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/catalog"
	"github.com/yaklabco/mdlstyle/pkg/fsutil"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type checkFlags struct {
	jobs      int
	noContext bool
	quiet     bool
	watch     bool
}

// checkResult is the outcome of checking one style.
type checkResult struct {
	name     string
	source   []byte
	problems []pretty.Problem
}

func (r *checkResult) counts() (errs, warnings int) {
	for _, p := range r.problems {
		if p.Severity == pretty.SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

func newCheckCommand(global *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [style...]",
		Short: "Check style files for errors",
		Long: `Parse and resolve each style, reporting syntax errors, unknown rules and
tags, invalid parameter values, and unknown options with their positions.

Arguments are style files or built-in style names. Without arguments the
style selected by the configuration is checked. Exits with status 65 when
any style has errors.

Examples:
  mdlstyle check                   Check the project style
  mdlstyle check .mdl.rb docs.rb   Check several styles
  mdlstyle check --strict .mdl.rb  Treat unknown options as errors
  mdlstyle check --watch .mdl.rb   Re-check whenever the file changes`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, global, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of styles checked in parallel (0 = auto)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report errors")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-check style files when they change")

	return cmd
}

func runCheck(cmd *cobra.Command, global *globalFlags, flags *checkFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 {
		result, err := configloader.Load(ctx, configloader.LoadOptions{
			ExplicitPath: global.configPath,
			CLI:          global.cliSettings(cmd, ""),
		})
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		args = []string{result.StylePath}
	}

	opts := ruleset.Options{
		Strict: global.strict,
		Filter: ruleset.ParseFilter(global.rules, global.tags),
	}

	jobs := flags.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logging.FromContext(ctx).Debug("checking styles", logging.FieldPaths, args, logging.FieldJobs, jobs)

	reg := catalog.Default()
	out := cmd.OutOrStdout()

	results, err := checkStyles(ctx, args, reg, opts, jobs)
	if err != nil {
		return err
	}
	reportErr := reportCheck(out, global.color, flags, results)
	if !flags.watch {
		return reportErr
	}

	var files []string
	for _, ref := range args {
		if fsutil.FileExists(ref) {
			files = append(files, ref)
		}
	}
	if len(files) == 0 {
		return usageErrorf("--watch needs at least one style file")
	}

	watcher, err := newStyleWatcher(files)
	if err != nil {
		return err
	}

	// The exit status reflects the last report shown.
	err = watcher.Run(ctx, watchDebounce, func() {
		results, err := checkStyles(ctx, args, reg, opts, jobs)
		if err != nil {
			return
		}
		fmt.Fprintln(out)
		reportErr = reportCheck(out, global.color, flags, results)
	})
	if err != nil {
		return err
	}
	return reportErr
}

// checkStyles checks every style concurrently. Results keep the order of
// refs. The returned error is only set on cancellation.
func checkStyles(ctx context.Context, refs []string, reg *catalog.Registry, opts ruleset.Options, jobs int) ([]*checkResult, error) {
	results := make([]*checkResult, len(refs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, ref := range refs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkStyle(ctx, ref, reg, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("check styles: %w", err)
	}
	return results, nil
}

func checkStyle(ctx context.Context, ref string, reg *catalog.Registry, opts ruleset.Options) *checkResult {
	result := &checkResult{name: ref}

	src, err := readStyleSource(ctx, ref)
	if err != nil {
		result.problems = append(result.problems, pretty.Problem{
			File: ref, Severity: pretty.SeverityError, Message: err.Error(),
		})
		return result
	}
	result.source = src

	file, err := style.Parse(ref, src)
	if err != nil {
		result.problems = problemsFromError(ref, err)
		return result
	}

	set, err := ruleset.Resolve(ctx, file, reg, opts)
	if err != nil {
		result.problems = problemsFromError(ref, err)
	}
	if set != nil {
		for _, w := range set.Warnings {
			result.problems = append(result.problems, pretty.Problem{
				File: ref, Line: w.Pos.Line, Column: w.Pos.Column,
				Severity: pretty.SeverityWarning, Message: w.Message,
			})
		}
		if len(set.Enabled()) == 0 {
			result.problems = append(result.problems, pretty.Problem{
				File: ref, Severity: pretty.SeverityWarning, Message: "no rules are enabled",
			})
		}
	}

	return result
}

// readStyleSource reads a style file, falling back to a built-in style of
// that name.
func readStyleSource(ctx context.Context, ref string) ([]byte, error) {
	name, isBuiltin := cutBuiltinRef(ref)
	if !isBuiltin {
		src, err := fsutil.ReadFile(ctx, ref)
		if err == nil || !errors.Is(err, fsutil.ErrNotFound) {
			return src, err
		}
	}
	if src, ok := style.BuiltinSource(name); ok {
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q is not a file or one of the built-in styles %v",
		configloader.ErrStyleNotFound, ref, style.BuiltinNames())
}

func cutBuiltinRef(ref string) (string, bool) {
	return strings.CutPrefix(ref, "builtin:")
}

// problemsFromError flattens parse and resolve errors into problems.
func problemsFromError(name string, err error) []pretty.Problem {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []pretty.Problem
		for _, inner := range joined.Unwrap() {
			out = append(out, problemsFromError(name, inner)...)
		}
		return out
	}

	problem := pretty.Problem{File: name, Severity: pretty.SeverityError, Message: err.Error()}

	var (
		syntaxErr  *style.SyntaxError
		resolveErr *ruleset.ResolveError
	)
	switch {
	case errors.As(err, &syntaxErr):
		problem.Line, problem.Column = syntaxErr.Pos.Line, syntaxErr.Pos.Column
		problem.Message = syntaxErr.Msg
	case errors.As(err, &resolveErr):
		problem.Line, problem.Column = resolveErr.Pos.Line, resolveErr.Pos.Column
		problem.Message = resolveErr.Err.Error()
	}

	return []pretty.Problem{problem}
}

func reportCheck(out io.Writer, colorMode string, flags *checkFlags, results []*checkResult) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	stats := pretty.CheckStats{Files: len(results)}

	for _, result := range results {
		errs, warnings := result.counts()
		stats.Errors += errs
		if !flags.quiet {
			stats.Warnings += warnings
		}
		if errs > 0 {
			stats.Failed++
		}

		shown := errs
		if !flags.quiet {
			shown += warnings
		}
		if shown == 0 {
			continue
		}

		fmt.Fprintln(out, styles.FormatFileHeader(result.name, shown))
		for _, problem := range result.problems {
			if flags.quiet && problem.Severity != pretty.SeverityError {
				continue
			}
			var line string
			if !flags.noContext {
				line = pretty.SourceLine(result.source, problem.Line)
			}
			fmt.Fprint(out, styles.FormatProblem(problem, line))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, styles.FormatCheckSummary(stats))

	if stats.Failed > 0 {
		return ErrCheckFailed
	}
	return nil
}
