package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/systmms/mkv/internal/config"
	"github.com/systmms/mkv/internal/logging"
	"github.com/systmms/mkv/internal/metrics"
)

// cliHarness runs mkv commands against a temporary store. Every call to run
// builds a fresh command tree and config, like a separate process would.
type cliHarness struct {
	t       *testing.T
	dir     string
	store   string
	out     bytes.Buffer
	logs    bytes.Buffer
	metrics *metrics.Metrics
	debug   bool
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()

	dir := t.TempDir()
	return &cliHarness{
		t:     t,
		dir:   dir,
		store: filepath.Join(dir, "secrets.json"),
	}
}

func (h *cliHarness) run(args ...string) error {
	h.t.Helper()

	h.out.Reset()
	h.logs.Reset()
	h.metrics = metrics.New()

	cfg := &config.Config{
		Logger:  logging.NewWithWriter(&h.logs, h.debug),
		Metrics: h.metrics,
		Out:     &h.out,
	}
	root := NewRootCommand(cfg, "test")
	root.SetOut(&h.out)
	root.SetErr(&h.logs)

	full := append([]string{"--config", filepath.Join(h.dir, "mkv.yaml"), "--store", h.store}, args...)
	root.SetArgs(full)
	return root.Execute()
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()

	err := h.run(args...)
	if err != nil {
		h.t.Logf("logs: %s", h.logs.String())
	}
	require.NoError(h.t, err)
	return h.out.String()
}

func (h *cliHarness) writeFile(name, content string) string {
	h.t.Helper()

	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func (h *cliHarness) storeContents() map[string]any {
	h.t.Helper()

	data, err := os.ReadFile(h.store)
	require.NoError(h.t, err)
	var out map[string]any
	require.NoError(h.t, json.Unmarshal(data, &out))
	return out
}
