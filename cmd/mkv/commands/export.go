package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/metrics"
)

func NewExportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <filepath>",
		Short: "Export all secrets to a JSON file.",
		Long: `Write the whole store, unmasked, to a JSON file.

The target file is replaced and created with mode 0600. The output can be
fed back with 'mkv import'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			count, err := openStore(cfg).Export(path)
			if err != nil {
				return fail(cfg, "export", err)
			}

			cfg.Metrics.SetSecretCount(count)
			cfg.Metrics.RecordOperation("export", metrics.OutcomeOK)
			if count == 0 {
				fmt.Fprintf(cfg.Stdout(), "No secrets found to export. An empty JSON object has been written to '%s'.\n", path)
				return nil
			}
			fmt.Fprintf(cfg.Stdout(), "Successfully exported %d secret(s) to '%s'.\n", count, path)
			return nil
		},
	}

	return cmd
}
