package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretRedaction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "secret is redacted",
			input:    "my-secret-password",
			expected: "[REDACTED]",
		},
		{
			name:     "empty secret is still redacted",
			input:    "",
			expected: "[REDACTED]",
		},
		{
			name:     "complex secret is redacted",
			input:    "password123!@#",
			expected: "[REDACTED]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Secret(tt.input).String())
			assert.Equal(t, tt.expected, Secret(tt.input).GoString())
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true)

	logger.Info("info %s", "message")
	logger.Warn("warn %s", "message")
	logger.Error("error %s", "message")
	logger.Debug("debug %s", "message")

	assert.Equal(t, "✓ info message\n⚠ warn message\n✗ error message\n[DEBUG] debug message\n", buf.String())
}

func TestLoggerDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Debug("should not appear")
	assert.Empty(t, buf.String())
	assert.False(t, logger.DebugEnabled())
}

func TestLoggerRedactsSecretArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true)

	logger.Debug("set %s = %s", "API_KEY", Secret("sk-live-1234567890"))
	logger.Info("value %v", Secret("sk-live-1234567890"))
	logger.Warn("value %#v", Secret("sk-live-1234567890"))

	output := buf.String()
	assert.NotContains(t, output, "sk-live-1234567890")
	assert.Contains(t, output, "API_KEY")
	assert.Contains(t, output, "[REDACTED]")
}

func TestNewLoggerColor(t *testing.T) {
	colored := New(false, false)
	plain := New(false, true)

	assert.False(t, colored.noColor)
	assert.True(t, plain.noColor)
}

func TestRedactFunction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		secrets  []string
		expected string
	}{
		{
			name:     "single secret redacted",
			input:    "The password is secret123",
			secrets:  []string{"secret123"},
			expected: "The password is [REDACTED]",
		},
		{
			name:     "multiple secrets redacted",
			input:    "User admin with password secret123 and API key abc123",
			secrets:  []string{"admin", "secret123", "abc123"},
			expected: "User [REDACTED] with password [REDACTED] and API key [REDACTED]",
		},
		{
			name:     "no secrets to redact",
			input:    "This has no secrets",
			secrets:  []string{},
			expected: "This has no secrets",
		},
		{
			name:     "empty secret ignored",
			input:    "This has no secrets",
			secrets:  []string{""},
			expected: "This has no secrets",
		},
		{
			name:     "short secret ignored",
			input:    "Short secret: ab",
			secrets:  []string{"ab"},
			expected: "Short secret: ab", // Too short to redact
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Redact(tt.input, tt.secrets), fmt.Sprintf("Redact(%q)", tt.input))
		})
	}
}
