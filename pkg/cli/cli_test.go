package cli

import (
	"testing"
	"time"
)

func TestParseArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := ParseArgs(nil)
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if config.LogLevel != "info" {
			t.Errorf("Expected default log level info, got %s", config.LogLevel)
		}
		if config.Timeout != 0 {
			t.Errorf("Expected no timeout, got %v", config.Timeout)
		}
		if config.Headless || config.Skip {
			t.Error("Expected headless and skip to default to false")
		}
	})

	t.Run("game path", func(t *testing.T) {
		config, err := ParseArgs([]string{"/games/grisly"})
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if config.GamePath != "/games/grisly" {
			t.Errorf("Expected game path /games/grisly, got %s", config.GamePath)
		}
		if config.EntryScript != "" {
			t.Errorf("Expected no entry script, got %s", config.EntryScript)
		}
	})

	t.Run("script file as entry point", func(t *testing.T) {
		config, err := ParseArgs([]string{"/games/grisly/scripts/chapter2.txt"})
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if config.GamePath != "/games/grisly" {
			t.Errorf("Expected game path /games/grisly, got %s", config.GamePath)
		}
		if config.EntryScript != "chapter2" {
			t.Errorf("Expected entry script chapter2, got %s", config.EntryScript)
		}
	})

	t.Run("flags after positional", func(t *testing.T) {
		config, err := ParseArgs([]string{"/games/grisly", "--timeout", "10", "--headless"})
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if config.Timeout != 10*time.Second {
			t.Errorf("Expected timeout 10s, got %v", config.Timeout)
		}
		if !config.Headless {
			t.Error("Expected headless mode")
		}
		if config.GamePath != "/games/grisly" {
			t.Errorf("Expected game path preserved, got %s", config.GamePath)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		if _, err := ParseArgs([]string{"--log-level", "verbose"}); err == nil {
			t.Error("Expected error for invalid log level")
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("HEADLESS", "1")
		t.Setenv("TIMEOUT", "5")
		t.Setenv("LOG_LEVEL", "debug")

		config, err := ParseArgs(nil)
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if !config.Headless {
			t.Error("Expected HEADLESS=1 to enable headless mode")
		}
		if config.Timeout != 5*time.Second {
			t.Errorf("Expected timeout 5s from env, got %v", config.Timeout)
		}
		if config.LogLevel != "debug" {
			t.Errorf("Expected log level debug from env, got %s", config.LogLevel)
		}
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "error")
		config, err := ParseArgs([]string{"--log-level", "warn"})
		if err != nil {
			t.Fatalf("ParseArgs failed: %v", err)
		}
		if config.LogLevel != "warn" {
			t.Errorf("Expected flag to win, got %s", config.LogLevel)
		}
	})
}
