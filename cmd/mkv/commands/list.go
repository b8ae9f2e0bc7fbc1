package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/display"
	"github.com/systmms/mkv/internal/metrics"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	var showValues bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all secret keys and their values (partially masked)",
		Long: `List every stored key with its value.

Values are masked by default: strings longer than seven characters show
their first and last three characters, shorter values show '***'.
Use --show-values to print them in full.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets, err := openStore(cfg).List()
			if err != nil {
				return fail(cfg, "list", err)
			}

			if _, err := display.NewReport(secrets, showValues).WriteTo(cfg.Stdout()); err != nil {
				return fail(cfg, "list", err)
			}

			cfg.Metrics.SetSecretCount(secrets.Len())
			cfg.Metrics.RecordOperation("list", metrics.OutcomeOK)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showValues, "show-values", "s", false, "Show actual values instead of masking them")

	return cmd
}
