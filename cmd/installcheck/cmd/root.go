// Package cmd provides the CLI commands for installcheck.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/installcheck/internal/config"
	"github.com/Aman-CERP/installcheck/internal/logging"
	"github.com/Aman-CERP/installcheck/pkg/version"
)

// Persistent flags
var (
	debugMode      bool
	configPath     string
	loggingCleanup func()
)

// NewRootCmd creates the root command for the installcheck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "installcheck",
		Short: "Pre-flight checks for installing a PHP application",
		Long: `installcheck inspects one or more PHP runtimes and answers two questions:

  1. Can the Composer package manager be installed and run?
  2. Is the runtime compatible with the application?

It exits 0 when every selected requirement is met, 1 when a requirement
fails and 2 when a runtime could not be probed at all.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("installcheck version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.installcheck/logs/")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .installcheck.yaml in the current directory)")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newComposerCmd())
	cmd.AddCommand(newRuntimeCmd())
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when RunE fails
	_ = stopLogging(root, nil)
	return err
}

// startLogging sends logs to a rotating file with --debug and to stderr
// otherwise.
func startLogging(cmd *cobra.Command, _ []string) error {
	if debugMode {
		logger, cleanup, err := logging.Setup(logging.DebugConfig())
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("Debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version),
			slog.String("command", cmd.CommandPath()))
		return nil
	}

	level := "warn"
	if v := os.Getenv("INSTALLCHECK_LOG_LEVEL"); v != "" {
		level = v
	}
	// replaced by the configured level once the config is loaded
	slog.SetDefault(logging.NewConsoleLogger(cmd.ErrOrStderr(), level))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// loadConfig loads the configuration for the current directory, honoring
// --config, and applies its log level unless --debug is active.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(".", configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	if !debugMode {
		slog.SetDefault(logging.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	}
	return cfg, nil
}
