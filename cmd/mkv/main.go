package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/systmms/mkv/cmd/mkv/commands"
	"github.com/systmms/mkv/internal/config"
	mkverrors "github.com/systmms/mkv/internal/errors"
	"github.com/systmms/mkv/internal/secure"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()
	secure.Purge()
	if err != nil {
		var reported commands.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", mkverrors.SimplifyError(err))
		}
		os.Exit(1)
	}
}

func run() error {
	cfg := &config.Config{}

	rootCmd := commands.NewRootCommand(cfg, fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	err := rootCmd.Execute()

	if merr := cfg.Metrics.WriteTextfile(cfg.MetricsFile); merr != nil && cfg.Logger != nil {
		cfg.Logger.Warn("%v", merr)
	}

	return err
}
