package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})

	t.Run("Writes To Given Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("cache refreshed", "rows", 3)

		out := buf.String()
		if !strings.Contains(out, "cache refreshed") {
			t.Errorf("expected log output to contain message, got %q", out)
		}
		if !strings.Contains(out, "rows") {
			t.Errorf("expected log output to contain key, got %q", out)
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vtriage.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("started")

	if _, err := NewFileLogger(path); err != nil {
		t.Errorf("reopening an existing log file should succeed: %v", err)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	child := WithLogger(logger, "component", "engine")
	child.Info("dispatching")

	if !strings.Contains(buf.String(), "engine") {
		t.Errorf("expected child logger to carry key-values, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("hidden")
	logger.Error("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info line suppressed, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected error line present, got %q", out)
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID format, got %q", a)
	}
}
