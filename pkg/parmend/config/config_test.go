package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// load runs Setup then Load on a fresh viper instance.
func load(t *testing.T, cfgFile string) *Config {
	t.Helper()

	v := viper.New()
	if err := Setup(v, cfgFile); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	// Use a temp directory that doesn't have a config file.
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg := load(t, "")

	if cfg.Engine.Binary != DefaultEngineBinary {
		t.Errorf("Engine.Binary = %q, want %q", cfg.Engine.Binary, DefaultEngineBinary)
	}

	if cfg.Purge != DefaultPurge {
		t.Errorf("Purge = %v, want %v", cfg.Purge, DefaultPurge)
	}

	if cfg.Watch.DebounceSeconds != DefaultWatchDebounce {
		t.Errorf("Watch.DebounceSeconds = %d, want %d", cfg.Watch.DebounceSeconds, DefaultWatchDebounce)
	}

	if !cfg.Watch.Repair {
		t.Error("Watch.Repair = false, want true")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	// Component overrides come only from explicit configuration.
	if len(cfg.Logging.Components) != 0 {
		t.Errorf("Logging.Components = %v, want none by default", cfg.Logging.Components)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "parmend")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
purge: true
engine:
  binary: /opt/par2/bin/par2
watch:
  debounce_seconds: 30
  repair: false
logging:
  level: debug
  components:
    engine: error
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg := load(t, "")

	if !cfg.Purge {
		t.Error("Purge = false, want true")
	}
	if cfg.Engine.Binary != "/opt/par2/bin/par2" {
		t.Errorf("Engine.Binary = %q, want %q", cfg.Engine.Binary, "/opt/par2/bin/par2")
	}
	if cfg.Watch.DebounceSeconds != 30 {
		t.Errorf("Watch.DebounceSeconds = %d, want 30", cfg.Watch.DebounceSeconds)
	}
	if cfg.Watch.Repair {
		t.Error("Watch.Repair = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Components["engine"] != "error" {
		t.Errorf("Logging.Components[engine] = %q, want %q", cfg.Logging.Components["engine"], "error")
	}
}

func TestLoad_XDGConfigHome(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "parmend")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("purge: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := load(t, "")

	if !cfg.Purge {
		t.Error("Purge = false, want true (from XDG config)")
	}
}

func TestSetup_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  binary: /usr/local/bin/par2\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := load(t, path)

	if cfg.Engine.Binary != "/usr/local/bin/par2" {
		t.Errorf("Engine.Binary = %q, want %q", cfg.Engine.Binary, "/usr/local/bin/par2")
	}
}

func TestSetup_ExplicitFileMissing(t *testing.T) {
	v := viper.New()
	err := Setup(v, filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Setup() with a missing explicit config file must fail")
	}
}

func TestSetup_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("PARMEND_ENGINE_BINARY", "/env/par2")
	t.Setenv("PARMEND_WATCH_DEBOUNCE_SECONDS", "42")

	v := viper.New()
	if err := Setup(v, ""); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if got := v.GetString("engine.binary"); got != "/env/par2" {
		t.Errorf("engine.binary = %q, want %q", got, "/env/par2")
	}
	if got := v.GetInt("watch.debounce_seconds"); got != 42 {
		t.Errorf("watch.debounce_seconds = %d, want 42", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/downloads", filepath.Join(home, "downloads")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.input)
		if err != nil {
			t.Errorf("ExpandPath(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
