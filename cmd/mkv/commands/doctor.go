package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/metrics"
	"github.com/systmms/mkv/internal/store"
)

// CheckResult is one row of the doctor report
type CheckResult struct {
	Name        string
	Status      string // ok, warn, error
	Message     string
	Suggestions []string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the backing file",
		Long: `Inspect the backing file without modifying it.

This command checks:
- Whether the backing file exists
- That only the owner can read it
- That it parses as a JSON object (files that don't are treated as empty)
- That every key is non-empty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health := openStore(cfg).Inspect()
			results := diagnose(health)

			out := cfg.Stdout()
			displayCheckResults(out, results, verbose)

			failed := 0
			for _, result := range results {
				if result.Status == "error" {
					failed++
				}
			}
			fmt.Fprintf(out, "\nSummary: %d/%d checks passed\n", len(results)-failed, len(results))

			if failed > 0 {
				return fail(cfg, "doctor", fmt.Errorf("backing file %s is not healthy", health.Path))
			}
			cfg.Metrics.SetSecretCount(health.Keys)
			cfg.Metrics.RecordOperation("doctor", metrics.OutcomeOK)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show suggestions for failed checks")

	return cmd
}

func diagnose(h store.Health) []CheckResult {
	var results []CheckResult

	if !h.Exists {
		if h.LoadErr != nil {
			return append(results, CheckResult{
				Name:    "file",
				Status:  "error",
				Message: h.LoadErr.Error(),
				Suggestions: []string{
					"Check that the directory is readable",
				},
			})
		}
		return append(results, CheckResult{
			Name:    "file",
			Status:  "ok",
			Message: fmt.Sprintf("%s not created yet (empty store)", h.Path),
		})
	}

	results = append(results, CheckResult{
		Name:    "file",
		Status:  "ok",
		Message: fmt.Sprintf("%s (%d bytes)", h.Path, h.Size),
	})

	if h.WorldAccessible() {
		results = append(results, CheckResult{
			Name:    "permissions",
			Status:  "warn",
			Message: fmt.Sprintf("mode %s allows access by other users", h.Mode.Perm()),
			Suggestions: []string{
				fmt.Sprintf("Run: chmod 600 %s", h.Path),
			},
		})
	} else {
		results = append(results, CheckResult{
			Name:    "permissions",
			Status:  "ok",
			Message: fmt.Sprintf("mode %s", h.Mode.Perm()),
		})
	}

	if h.LoadErr != nil {
		results = append(results, CheckResult{
			Name:    "format",
			Status:  "error",
			Message: h.LoadErr.Error(),
			Suggestions: []string{
				"Commands treat this file as an empty store; a set or import would replace its content",
				"Fix the file by hand or restore it from an export",
			},
		})
		return results
	}

	results = append(results, CheckResult{
		Name:    "format",
		Status:  "ok",
		Message: fmt.Sprintf("JSON object with %d secret(s)", h.Keys),
	})

	if len(h.Violations) > 0 {
		results = append(results, CheckResult{
			Name:        "keys",
			Status:      "warn",
			Message:     fmt.Sprintf("%d key problem(s) found", len(h.Violations)),
			Suggestions: h.Violations,
		})
	}

	return results
}

func displayCheckResults(out io.Writer, results []CheckResult, verbose bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "CHECK\tSTATUS\tMESSAGE\n")
	_, _ = fmt.Fprintf(w, "-----\t------\t-------\n")

	for _, result := range results {
		status := result.Status
		switch result.Status {
		case "ok":
			status = "✓ " + status
		case "warn":
			status = "⚠ " + status
		case "error":
			status = "✗ " + status
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", result.Name, status, result.Message)
	}

	_ = w.Flush()

	if !verbose {
		return
	}
	for _, result := range results {
		if result.Status == "ok" || len(result.Suggestions) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s suggestions:\n", result.Name)
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(out, "  • %s\n", suggestion)
		}
	}
}
