package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/metrics"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a secret",
		Long: `Remove a key from the store.

The backing file is only rewritten when the key existed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if err := openStore(cfg).Delete(key); err != nil {
				if isNotFound(err) {
					return notFound(cfg, "delete", key)
				}
				return fail(cfg, "delete", err)
			}

			cfg.Metrics.RecordOperation("delete", metrics.OutcomeOK)
			fmt.Fprintf(cfg.Stdout(), "Secret '%s' deleted.\n", key)
			return nil
		},
	}

	return cmd
}
