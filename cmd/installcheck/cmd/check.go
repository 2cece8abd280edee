package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/installcheck/internal/config"
	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/preflight"
	"github.com/Aman-CERP/installcheck/internal/probe"
	"github.com/Aman-CERP/installcheck/internal/report"
)

const (
	lockWait  = 30 * time.Second
	lockRetry = 100 * time.Millisecond
)

type checkOptions struct {
	binaries   []string
	snapshot   string
	only       string
	jsonOutput bool
	verbose    bool
	noColor    bool
	workDir    string
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run every configured evaluator",
		Long: `Run the package-manager and runtime evaluators against each configured
PHP binary and print one report per binary.

The package-manager evaluator runs every check and lists all problems. The
runtime evaluator stops at the first failing check.`,
		Example: `  # Check the php on PATH from the installation directory
  installcheck check --work-dir /srv/shop

  # Compare two runtimes, machine-readable
  installcheck check --php php8.1 --php php8.3 --json

  # Evaluate a snapshot taken on another machine
  installcheck check --snapshot prod-php.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts, "")
		},
	}

	addCheckFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.only, "only", "", "Run a single evaluator: package-manager or runtime")

	return cmd
}

func newComposerCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:     "composer",
		Aliases: []string{"package-manager"},
		Short:   "Check whether Composer can be installed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts, config.EvaluatorPackageManager)
		},
	}

	addCheckFlags(cmd, opts)
	return cmd
}

func newRuntimeCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "runtime",
		Short: "Check whether the runtime is compatible with the application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts, config.EvaluatorRuntime)
		},
	}

	addCheckFlags(cmd, opts)
	return cmd
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().StringArrayVar(&opts.binaries, "php", nil, "PHP CLI binary to check (repeatable)")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Evaluate a snapshot file instead of running PHP")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show details for passing checks")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.workDir, "work-dir", "", "Directory for file, folder and symlink probes")
	cmd.MarkFlagsMutuallyExclusive("php", "snapshot")
}

func runCheck(cmd *cobra.Command, opts *checkOptions, forced string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyCheckOptions(cfg, opts, forced); err != nil {
		return err
	}

	ctx := cmd.Context()
	lock := probe.NewLock(cfg.Probe.WorkDir)
	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	err = lock.Acquire(lockCtx, lockRetry)
	cancel()
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	collected, err := collectSnapshots(ctx, cfg, opts.snapshot)
	if err != nil {
		return err
	}

	evals := evaluate(cfg, collected)

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := report.JSON(out, evals); err != nil {
			return ierrors.InternalError("write JSON report", err)
		}
	} else {
		report.NewRenderer(out, report.Options{
			Color:   report.UseColor(out, opts.noColor),
			Verbose: opts.verbose,
		}).Evaluations(evals)
	}

	return verdictError(evals)
}

// applyCheckOptions lets flags override the loaded configuration.
func applyCheckOptions(cfg *config.Config, opts *checkOptions, forced string) error {
	for _, bin := range opts.binaries {
		if strings.TrimSpace(bin) == "" {
			return ierrors.ValidationError("--php needs a binary name or path", nil).
				WithSuggestion("Pass --php php8.2 or --php /usr/bin/php")
		}
	}
	if len(opts.binaries) > 0 {
		cfg.PHP.Binaries = opts.binaries
	}
	if opts.workDir != "" {
		cfg.Probe.WorkDir = opts.workDir
	}

	selected := forced
	if selected == "" {
		selected = opts.only
	}
	if selected != "" {
		if !config.IsEvaluator(selected) {
			return ierrors.New(ierrors.ErrCodeUnknownEvaluator, fmt.Sprintf("unknown evaluator %q", selected), nil).
				WithSuggestion(fmt.Sprintf("Use %s or %s", config.EvaluatorPackageManager, config.EvaluatorRuntime))
		}
		cfg.Evaluators = []string{selected}
	}
	return nil
}

// collectSnapshots returns one entry per configured binary, or a single
// entry for a snapshot file.
func collectSnapshots(ctx context.Context, cfg *config.Config, snapshotPath string) ([]probe.Collected, error) {
	if snapshotPath != "" {
		snap, err := probe.LoadSnapshot(snapshotPath)
		if err != nil {
			return nil, err
		}
		name := snap.Binary
		if name == "" {
			name = snapshotPath
		}
		return []probe.Collected{{Binary: name, Snapshot: snap}}, nil
	}

	collector := probe.NewCollector(
		probe.WithTimeout(cfg.PHP.Timeout),
		probe.WithParallelism(cfg.PHP.Parallelism),
	)
	return collector.CollectAll(ctx, cfg.PHP.Binaries), nil
}

// evaluate runs the selected evaluators. Binaries are evaluated one at a
// time since they share the probe directory.
func evaluate(cfg *config.Config, collected []probe.Collected) []report.Evaluation {
	req := cfg.PreflightRequirements()
	evals := make([]report.Evaluation, 0, len(collected))

	for _, c := range collected {
		e := report.Evaluation{Binary: c.Binary, Err: c.Err}
		if c.Err != nil {
			slog.Warn("runtime could not be probed",
				slog.String("binary", c.Binary),
				slog.Any("error", ierrors.FormatForLog(c.Err)))
			evals = append(evals, e)
			continue
		}

		e.Version = c.Snapshot.Version
		host := probe.NewHost(c.Snapshot, cfg.Probe.WorkDir)
		if cfg.HasEvaluator(config.EvaluatorPackageManager) {
			r := preflight.EvaluatePackageManager(host, req)
			e.PackageManager = &r
		}
		if cfg.HasEvaluator(config.EvaluatorRuntime) {
			r := preflight.EvaluateRuntime(host, req)
			e.Runtime = &r
		}

		slog.Debug("evaluation finished",
			slog.String("binary", c.Binary),
			slog.String("version", e.Version),
			slog.Bool("ok", e.OK()),
			slog.Any("failed", e.Failed()))
		evals = append(evals, e)
	}
	return evals
}

// verdictError maps the outcome to an exit code. A runtime that could not be
// probed outranks a failed verdict.
func verdictError(evals []report.Evaluation) error {
	for _, e := range evals {
		if e.Err != nil {
			return &ierrors.ExitError{Code: ierrors.ExitNoProbe, Message: "runtime could not be probed"}
		}
	}
	if !report.AllOK(evals) {
		return &ierrors.ExitError{Code: ierrors.ExitVerdict, Message: "requirements not met"}
	}
	return nil
}
