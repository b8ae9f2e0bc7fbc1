package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/logging"
	"github.com/systmms/mkv/internal/metrics"
)

// NewRootCommand assembles the mkv command tree around cfg. Flags are
// applied to cfg before any subcommand runs.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	var (
		noColor bool
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:   "mkv",
		Short: "CLI to manage local secrets",
		Long: `mkv keeps secrets in a single JSON file and lets you set, get, delete,
list, import and export them from the command line.

The backing file defaults to ./secrets.json. Override it with --store,
the MKV_STORE environment variable or 'store:' in mkv.yaml.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Logger == nil {
				cfg.Logger = logging.New(debug, noColor)
			}
			if cfg.Metrics == nil {
				cfg.Metrics = metrics.New()
			}

			flags := cmd.Flags()
			cfg.StoreFlagSet = flags.Changed("store")
			cfg.StrictFlagSet = flags.Changed("strict")
			cfg.MetricsFlagSet = flags.Changed("metrics-file")

			return cfg.Load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Path, "config", config.DefaultPath, "Config file path")
	flags.StringVar(&cfg.StorePath, "store", "", "Backing file path (default \"secrets.json\")")
	flags.BoolVar(&cfg.Strict, "strict", false, "Exit non-zero when an operation fails")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		NewSetCommand(cfg),
		NewGetCommand(cfg),
		NewDeleteCommand(cfg),
		NewListCommand(cfg),
		NewImportCommand(cfg),
		NewExportCommand(cfg),
		NewDoctorCommand(cfg),
		NewCompletionCommand(cfg),
	)

	return rootCmd
}
