package cmd

import (
	"github.com/spf13/cobra"

	ierrors "github.com/Aman-CERP/installcheck/internal/errors"
	"github.com/Aman-CERP/installcheck/internal/output"
	"github.com/Aman-CERP/installcheck/internal/probe"
)

func newSnapshotCmd() *cobra.Command {
	var (
		binary  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record a PHP runtime snapshot as YAML",
		Long: `Record the extensions, functions, classes and ini settings of a PHP runtime.

The snapshot can be evaluated later, or on another machine, with
'installcheck check --snapshot <file>'.`,
		Example: `  # Print a snapshot of the php on PATH
  installcheck snapshot

  # Save a snapshot of a specific binary
  installcheck snapshot --php /usr/bin/php8.2 -o php82.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if binary == "" {
				binary = cfg.PHP.Binaries[0]
			}

			collector := probe.NewCollector(probe.WithTimeout(cfg.PHP.Timeout))
			snap, err := collector.Get(cmd.Context(), binary)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := snap.WriteYAML(outPath); err != nil {
					return err
				}
				out := output.New(cmd.ErrOrStderr())
				out.Successf("Snapshot of %s (PHP %s) written", snap.Binary, snap.Version)
				out.Statusf("📁", "Location: %s", outPath)
				return nil
			}

			data, err := snap.EncodeYAML()
			if err != nil {
				return ierrors.InternalError("encode snapshot", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&binary, "php", "", "PHP CLI binary (default: first configured binary)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
