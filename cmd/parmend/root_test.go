package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"parmend/pkg/parmend/logging"
)

func TestInitLoggingHonorsConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	configDir := filepath.Join(tempDir, ".config", "parmend")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	logPath := filepath.Join(tempDir, "parmend.log")
	configContent := "logging:\n" +
		"  level: debug\n" +
		"  path: " + logPath + "\n" +
		"  components:\n" +
		"    engine: error\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	cfgFile = ""

	initConfig()
	initLogging()
	t.Cleanup(func() { _ = logging.Close() })

	logging.Get("repair").Debug("configured path in use")
	logging.Get("engine").Debug("below the component level")
	if err := logging.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not created at configured path: %v", err)
	}
	if !strings.Contains(string(data), "configured path in use") {
		t.Errorf("log file missing repair debug line: %q", string(data))
	}
	if strings.Contains(string(data), "below the component level") {
		t.Errorf("per-component level override not applied: %q", string(data))
	}
}
