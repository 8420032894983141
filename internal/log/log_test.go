// ABOUTME: Tests for diagnostic logging
// ABOUTME: Validates level filtering and output redirection

package log

import (
	"bytes"
	"strings"
	"testing"
)

// Tests in this file mutate package globals and must not run in parallel.

func TestSetLevel(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}
	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestLevelFiltering(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetLevel(LevelWarn)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed levels leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("missing expected lines: %q", out)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	saved := GetLevel()
	defer SetLevel(saved)
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetLevel(LevelError + 4)
	Error("still here")
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("Error was filtered: %q", buf.String())
	}
}
