package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	mkverrors "github.com/systmms/mkv/internal/errors"
	"github.com/systmms/mkv/internal/logging"
	"github.com/systmms/mkv/internal/metrics"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the config file looked up when --config is not given
	DefaultPath = "mkv.yaml"

	// DefaultStorePath is the backing file used when nothing else is configured.
	// Relative paths resolve against the working directory.
	DefaultStorePath = "secrets.json"

	// StoreEnvVar overrides the backing file location
	StoreEnvVar = "MKV_STORE"
)

// Config holds the runtime configuration
type Config struct {
	Path        string
	StorePath   string
	Strict      bool
	MetricsFile string
	Logger      *logging.Logger
	Metrics     *metrics.Metrics

	// Out receives command results; nil means stdout
	Out io.Writer

	// Set by the CLI when the matching flag was given explicitly
	StoreFlagSet   bool
	StrictFlagSet  bool
	MetricsFlagSet bool

	Definition *Definition
}

// Definition represents the mkv.yaml structure
type Definition struct {
	Store       string `yaml:"store,omitempty"`
	Strict      *bool  `yaml:"strict,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Load reads the optional mkv.yaml file and resolves the effective settings.
// Precedence is flags, then the MKV_STORE environment variable, then the
// config file, then defaults. A missing config file is not an error.
func (c *Config) Load() error {
	def, err := c.readDefinition()
	if err != nil {
		return err
	}
	c.Definition = def

	if !c.StoreFlagSet {
		switch {
		case os.Getenv(StoreEnvVar) != "":
			c.StorePath = os.Getenv(StoreEnvVar)
		case def.Store != "":
			c.StorePath = def.Store
		}
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath
	}

	if !c.StrictFlagSet && def.Strict != nil {
		c.Strict = *def.Strict
	}
	if !c.MetricsFlagSet && def.MetricsFile != "" {
		c.MetricsFile = def.MetricsFile
	}

	if strings.TrimSpace(c.StorePath) == "" {
		return mkverrors.ConfigError{
			Field:      "store",
			Value:      c.StorePath,
			Message:    "store path must not be blank",
			Suggestion: fmt.Sprintf("Use --store <path> or set %s", StoreEnvVar),
		}
	}

	if c.Logger != nil {
		c.Logger.Debug("Using store %s (strict=%t)", c.StorePath, c.Strict)
	}
	return nil
}

func (c *Config) readDefinition() (*Definition, error) {
	def := &Definition{}
	if c.Path == "" {
		return def, nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return nil, mkverrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, mkverrors.ConfigError{
			Value:      c.Path,
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	return def, nil
}

// Stdout returns the writer for command results
func (c *Config) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
