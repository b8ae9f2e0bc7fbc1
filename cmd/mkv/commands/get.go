package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/display"
	"github.com/systmms/mkv/internal/metrics"
	"github.com/systmms/mkv/internal/secure"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a secret",
		Long: `Print the value stored under a key.

Only the raw value is printed, making the command suitable for scripting.
Non-string values are printed in their JSON form.

Examples:
  mkv get API_KEY
  export DB_URL=$(mkv get DATABASE_URL)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			value, err := openStore(cfg).Get(key)
			if err != nil {
				if isNotFound(err) {
					return notFound(cfg, "get", key)
				}
				return fail(cfg, "get", err)
			}

			if err := secure.Reveal(cfg.Stdout(), display.Stringify(value)); err != nil {
				return fail(cfg, "get", err)
			}
			cfg.Metrics.RecordOperation("get", metrics.OutcomeOK)
			return nil
		},
	}

	return cmd
}
