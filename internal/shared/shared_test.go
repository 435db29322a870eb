package shared

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggers(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		t.Run("With Custom Writer", func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf)
			logger.Info("hello")

			if !strings.Contains(buf.String(), "hello") {
				t.Errorf("expected log output to contain message, got %q", buf.String())
			}
		})

		t.Run("With Nil Writer", func(t *testing.T) {
			logger := NewLogger(nil)
			if logger == nil {
				t.Fatal("expected logger to be created")
			}
		})
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "logs", "spotai.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		logger.Info("written to file")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "written to file") {
			t.Error("expected log file to contain message")
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "component", "test")
		child.Info("tagged")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected child logger to carry key-value pairs, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("suppressed")

		if strings.Contains(buf.String(), "suppressed") {
			t.Error("expected info message to be suppressed at error level")
		}
	})
}

func TestGenerators(t *testing.T) {
	t.Run("GenerateID", func(t *testing.T) {
		a := GenerateID()
		b := GenerateID()

		if a == "" || b == "" {
			t.Fatal("expected non-empty IDs")
		}
		if a == b {
			t.Error("expected unique IDs")
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"summary": "Upbeat pop mix"}

	t.Run("Compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(string(out), "\n") {
			t.Error("expected compact output")
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(out), "  ") {
			t.Error("expected indented output")
		}

		var decoded map[string]string
		if err := json.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("output should round-trip: %v", err)
		}
		if decoded["summary"] != "Upbeat pop mix" {
			t.Errorf("unexpected value: %s", decoded["summary"])
		}
	})
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Backend.URL == "" {
			t.Error("expected default backend URL")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
		if config.Server.Port == 0 {
			t.Error("expected default server port")
		}
	})

	t.Run("ServerConfig Addr", func(t *testing.T) {
		s := ServerConfig{Host: "127.0.0.1", Port: 5173}
		if s.Addr() != "127.0.0.1:5173" {
			t.Errorf("unexpected addr: %s", s.Addr())
		}
	})

	t.Run("Load And Save Round Trip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		original := DefaultConfig()
		original.Backend.URL = "http://backend.test:9000"

		if err := SaveConfig(path, original); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if loaded.Backend.URL != "http://backend.test:9000" {
			t.Errorf("expected saved backend URL, got %s", loaded.Backend.URL)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should parse: %v", err)
		}
		if loaded.Server.Host == "" {
			t.Error("expected server host in created config")
		}
	})
}
