package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	mkverrors "github.com/systmms/mkv/internal/errors"
	"github.com/systmms/mkv/internal/metrics"
)

func NewSetCommand(cfg *config.Config) *cobra.Command {
	var parseJSON bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a secret",
		Long: `Store a secret under the given key, replacing any existing value.

The value is stored as a string. Use --json to store numbers, booleans,
null or structured values instead.

Examples:
  mkv set API_KEY sk-live-123
  mkv set PORT 5432 --json
  mkv set FEATURES '{"beta": true}' --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if key == "" {
				return fail(cfg, "set", mkverrors.UserError{
					Message:    "Secret key must not be empty",
					Suggestion: "Provide a non-empty key, e.g. 'mkv set API_KEY value'",
				})
			}

			var value any = raw
			if parseJSON {
				if !json.Valid([]byte(raw)) {
					return fail(cfg, "set", mkverrors.UserError{
						Message:    fmt.Sprintf("Value for '%s' is not valid JSON", key),
						Suggestion: "Quote strings (e.g. '\"text\"') or drop --json to store the value as a string",
					})
				}
				value = json.RawMessage(raw)
			}

			if _, err := openStore(cfg).Set(key, value); err != nil {
				return fail(cfg, "set", err)
			}

			cfg.Metrics.RecordOperation("set", metrics.OutcomeOK)
			fmt.Fprintf(cfg.Stdout(), "Secret '%s' set.\n", key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&parseJSON, "json", false, "Parse the value as JSON")

	return cmd
}
