package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			opts := Options{
				Level:      tt.level,
				FilePath:   logFile,
				MaxSizeMB:  1,
				MaxBackups: 1,
				MaxAgeDays: 1,
			}
			if err := InitWithOptions(opts); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			out := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamedLoggerWritesComponent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithOptions(Options{Level: "info", FilePath: logFile, MaxSizeMB: 1}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Named("mesh").Info("normals recomputed", zap.Int("frame", 30))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(content)
	if !strings.Contains(out, "mesh") || !strings.Contains(out, "frame") {
		t.Errorf("named entry missing component or field: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions("debug", "/tmp/relief.log")

	if opts.FilePath != "/tmp/relief.log" {
		t.Errorf("expected path /tmp/relief.log, got %s", opts.FilePath)
	}
	if !opts.Console {
		t.Error("expected console output enabled")
	}
	if opts.MaxSizeMB != 10 || opts.MaxBackups != 3 || opts.MaxAgeDays != 14 {
		t.Errorf("unexpected rotation settings: %+v", opts)
	}
	if !opts.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestLoggerUsableBeforeInit(t *testing.T) {
	// the package default is a no-op logger, never nil
	Log = zap.NewNop()
	Sugar = Log.Sugar()
	Info("ignored")
	Sugar.Debugf("ignored %d", 1)
}
