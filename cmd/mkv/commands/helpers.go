package commands

import (
	"errors"
	"fmt"

	"github.com/systmms/mkv/internal/config"
	mkverrors "github.com/systmms/mkv/internal/errors"
	"github.com/systmms/mkv/internal/metrics"
	"github.com/systmms/mkv/internal/store"
)

// ReportedError wraps an error that has already been shown to the operator.
// main exits non-zero for it without printing it a second time.
type ReportedError struct {
	Err error
}

func (e ReportedError) Error() string {
	return e.Err.Error()
}

func (e ReportedError) Unwrap() error {
	return e.Err
}

// openStore builds the store for cfg and wires degraded-load reporting
func openStore(cfg *config.Config) *store.Store {
	return store.New(cfg.StorePath, cfg.Logger,
		store.WithStrict(cfg.Strict),
		store.WithDegradedLoadHandler(func(err *store.LoadError) error {
			cfg.Metrics.RecordDegradedLoad(err.Kind.String())
			if !cfg.Strict {
				cfg.Logger.Error("%v", err)
				cfg.Logger.Warn("Continuing with an empty store for this command")
			}
			return nil
		}),
	)
}

// fail reports err and records the failed verb. In strict mode the error is
// returned so the process exits non-zero; otherwise the command completes.
func fail(cfg *config.Config, verb string, err error) error {
	cfg.Metrics.RecordOperation(verb, metrics.OutcomeError)
	cfg.Logger.Error("%v", mkverrors.SimplifyError(err))
	if cfg.Strict {
		return ReportedError{Err: err}
	}
	return nil
}

// notFound prints the not-found message for key
func notFound(cfg *config.Config, verb, key string) error {
	cfg.Metrics.RecordOperation(verb, metrics.OutcomeNotFound)
	fmt.Fprintf(cfg.Stdout(), "Secret '%s' not found.\n", key)
	if cfg.Strict {
		return ReportedError{Err: fmt.Errorf("%w: %s", store.ErrNotFound, key)}
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
