package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultLogger(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logPath := filepath.Join(tmpDir, "test.log")

	config := &Config{
		LogFilePath:   logPath,
		MaxFileSize:   1024,
		MaxBackups:    3,
		Level:         LevelDebug,
		EnableConsole: false,
	}

	logger, err := NewDefaultLogger(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestLogLevels(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logPath := filepath.Join(tmpDir, "test.log")

	config := &Config{
		LogFilePath:   logPath,
		MaxFileSize:   1024 * 1024,
		MaxBackups:    3,
		Level:         LevelDebug,
		EnableConsole: false,
	}

	logger, err := NewDefaultLogger(config)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("debug message", String("key", "value"))
	logger.Info("info message", Int("count", 42))
	logger.Warn("warn message", Bool("flag", true))
	logger.Error("error message", errors.New("test error"), Float64("rate", 3.14))

	logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)

	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("Expected log content to contain %s", want)
		}
	}
	if !strings.Contains(logContent, "key=value") {
		t.Error("Expected string field in log output")
	}
	if !strings.Contains(logContent, `error="test error"`) {
		t.Error("Expected error to be rendered in log output")
	}
}

func TestLevelFiltering(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logPath := filepath.Join(tmpDir, "test.log")

	logger, err := NewDefaultLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 1024 * 1024,
		MaxBackups:  3,
		Level:       LevelWarn,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("warning shows up")
	logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if strings.Contains(string(content), "should not appear") {
		t.Error("Messages below the configured level should be filtered")
	}
	if !strings.Contains(string(content), "warning shows up") {
		t.Error("Messages at the configured level should be written")
	}
}

func TestRotation(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "logger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	logPath := filepath.Join(tmpDir, "test.log")

	logger, err := NewDefaultLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 256, // force rotation quickly
		MaxBackups:  2,
		Level:       LevelDebug,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	for i := 0; i < 50; i++ {
		logger.Info("a reasonably long log line to trigger rotation", Int("i", i))
	}
	logger.Close()

	if _, err := os.Stat(logPath + ".1"); os.IsNotExist(err) {
		t.Error("Expected rotated backup file to exist")
	}
}

func TestGlobalLoggerNoopWhenUninitialized(t *testing.T) {
	SetGlobalLogger(nil)
	// Must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error", errors.New("boom"))
}
