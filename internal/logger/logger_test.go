package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitCreatesLogDirectory(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init()")
	}

	if _, err := os.Stat(filepath.Join(configDir, "logs")); os.IsNotExist(err) {
		t.Error("log directory was not created")
	}

	// Logging must not panic in either mode.
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() in debug mode failed: %v", err)
	}
	Debug("debug message with caller reporting")
}

func TestHelpersSafeWithoutInit(t *testing.T) {
	Logger = nil

	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
}

func TestInitUnwritableDirectory(t *testing.T) {
	err := Init(Config{ConfigDir: "/proc/definitely/not/writable"})
	if err == nil {
		t.Skip("directory unexpectedly writable on this platform")
	}
}
