package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("load_replace", "filename or config must be provided")

	msg := err.Error()
	if !strings.Contains(msg, "load_replace") {
		t.Errorf("Error message should contain operation: %s", msg)
	}
	if !strings.Contains(msg, "filename or config") {
		t.Errorf("Error message should contain reason: %s", msg)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("InvalidInputError should unwrap to ErrInvalidInput")
	}
}

func TestConfigError(t *testing.T) {
	t.Run("replace carries output", func(t *testing.T) {
		err := NewReplaceConfigError("failed replace config", "Failed to parse specified config file\n")
		if !errors.Is(err, ErrReplaceConfig) {
			t.Error("should unwrap to ErrReplaceConfig")
		}
		if errors.Is(err, ErrMergeConfig) {
			t.Error("replace error should not match ErrMergeConfig")
		}
		if !strings.Contains(err.Error(), "Failed to parse") {
			t.Errorf("Error message should contain device output: %s", err.Error())
		}
	})

	t.Run("merge", func(t *testing.T) {
		err := NewMergeConfigError("failed merge config", "Set failed")
		if !errors.Is(err, ErrMergeConfig) {
			t.Error("should unwrap to ErrMergeConfig")
		}
	})

	t.Run("commit with cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewCommitError("failed to commit config on the device", "Commit failed", cause)
		if !errors.Is(err, ErrCommit) {
			t.Error("should unwrap to ErrCommit")
		}
		if !errors.Is(err, cause) {
			t.Error("should unwrap to its cause")
		}
	})

	t.Run("errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("router1: %w", NewReplaceConfigError("failed rollback", "oops"))
		var cfgErr *ConfigError
		if !errors.As(wrapped, &cfgErr) {
			t.Fatal("errors.As should find *ConfigError")
		}
		if cfgErr.Output != "oops" {
			t.Errorf("Output = %q", cfgErr.Output)
		}
	})
}

func TestConnectionError(t *testing.T) {
	cause := errors.New("EOF")
	err := NewConnectionError("router1", "send_command", cause)
	if !errors.Is(err, ErrConnection) {
		t.Error("should unwrap to ErrConnection")
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
	if !strings.Contains(err.Error(), "router1") {
		t.Errorf("Error message should contain device: %s", err.Error())
	}

	noCause := NewConnectionError("router1", "open", nil)
	if !errors.Is(noCause, ErrConnection) {
		t.Error("nil cause should still unwrap to ErrConnection")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrInvalidInput,
		ErrReplaceConfig,
		ErrMergeConfig,
		ErrCommit,
		ErrNotSupported,
		ErrConnection,
		ErrLookup,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v == %v", err1, err2)
			}
		}
	}
}

func TestErrorsIsWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"InvalidInputError", NewInvalidInputError("op", "reason"), ErrInvalidInput},
		{"NotSupportedError", NewNotSupportedError("commit message"), ErrNotSupported},
		{"LookupError", NewLookupError("show version", "Hardware S/N"), ErrLookup},
		{"CommitError", NewCommitError("msg", "", nil), ErrCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%s should wrap %v", tt.name, tt.sentinel)
			}
		})
	}
}
