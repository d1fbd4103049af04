package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitAtWritesToFile(t *testing.T) {
	dir := t.TempDir()

	if err := InitAt(dir); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	defer Close()

	Info("test message", "key", "value")

	name := "quoteswipe-" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "test message") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestHelpersNilSafe(t *testing.T) {
	// Helpers must not panic before Init is called.
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Info("no logger")
	Debug("no logger")
	Warn("no logger")
	Error("no logger")
	if got := WithPrefix("feed"); got != nil {
		t.Errorf("WithPrefix with nil logger = %v, want nil", got)
	}
}
