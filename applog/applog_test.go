package applog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"warn":    Warn,
		"error":   Error,
		"info":    Info,
		"bogus":   Info,
		"":        Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenWritesLinesAboveMinLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "termide.log")
	l, err := Open(path, Warn)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	l.Debug("should be dropped")
	l.Info("also dropped")
	l.Warn("heads up: %s", "disk low")
	l.Error("boom: %d", 42)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected sub-threshold lines to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] heads up: disk low") {
		t.Fatalf("expected warn line, got:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] boom: 42") {
		t.Fatalf("expected error line, got:\n%s", out)
	}
}

func TestNilLoggerMethodsAreNoOps(t *testing.T) {
	var l *Logger
	l.Info("noop")
	l.Close()
}

func TestLevelString(t *testing.T) {
	if Debug.String() != "DEBUG" || Error.String() != "ERROR" {
		t.Fatalf("unexpected level strings: %q %q", Debug.String(), Error.String())
	}
}
