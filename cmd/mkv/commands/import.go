package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/metrics"
)

func NewImportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <filepath>",
		Short: "Import secrets from a JSON file. Existing keys will be overwritten.",
		Long: `Merge a JSON object of key-value pairs into the store.

Keys from the file overwrite existing keys with the same name; keys that
only exist in the store are kept. Each imported key is reported as added
or updated. A file that is missing, not valid JSON, or not a JSON object
is rejected and the store is left unchanged.

Example:
  mkv import ./team-secrets.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			report, err := openStore(cfg).Import(path)
			if err != nil {
				return fail(cfg, "import", err)
			}

			out := cfg.Stdout()
			if report.Count() == 0 {
				cfg.Metrics.RecordOperation("import", metrics.OutcomeNoop)
				fmt.Fprintf(out, "No secrets found to import in '%s'. Ensure the file is not empty and contains a JSON object.\n", path)
				return nil
			}

			fmt.Fprintf(out, "Successfully imported %d secret(s) from '%s':\n", report.Count(), path)
			for _, imported := range report.Keys {
				fmt.Fprintf(out, "  - %s (%s)\n", imported.Key, imported.Status)
			}
			cfg.Metrics.RecordOperation("import", metrics.OutcomeOK)
			return nil
		},
	}

	return cmd
}
