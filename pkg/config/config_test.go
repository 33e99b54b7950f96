package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Session.RootDir != "." {
		t.Errorf("Expected default root_dir to be '.', got %q", cfg.Session.RootDir)
	}
	if cfg.Session.SourceExtension != ".loom" {
		t.Errorf("Expected default source_extension to be '.loom', got %q", cfg.Session.SourceExtension)
	}
	if cfg.Logging.Level != LogInfo {
		t.Errorf("Expected default logging level to be 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.JSON {
		t.Error("Expected JSON logging to be disabled by default")
	}
}

func TestLogLevelValidation(t *testing.T) {
	tests := []struct {
		level LogLevel
		valid bool
	}{
		{LogDebug, true},
		{LogInfo, true},
		{LogWarn, true},
		{LogError, true},
		{LogLevel("invalid"), false},
		{LogLevel(""), false},
		{LogLevel("DEBUG"), false}, // Case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := tt.level.IsValid()
			if got != tt.valid {
				t.Errorf("IsValid() = %v, want %v for %q", got, tt.valid, tt.level)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid default config",
			config:    DefaultConfig(),
			wantError: false,
		},
		{
			name: "empty root dir",
			config: &Config{
				Session: SessionConfig{RootDir: "", SourceExtension: ".loom"},
				Logging: LoggingConfig{Level: LogInfo},
			},
			wantError: true,
			errorMsg:  "root_dir",
		},
		{
			name: "empty source extension",
			config: &Config{
				Session: SessionConfig{RootDir: ".", SourceExtension: ""},
				Logging: LoggingConfig{Level: LogInfo},
			},
			wantError: true,
			errorMsg:  "source_extension",
		},
		{
			name: "negative max workers",
			config: &Config{
				Session: SessionConfig{RootDir: ".", SourceExtension: ".loom", MaxWorkers: -1},
				Logging: LoggingConfig{Level: LogInfo},
			},
			wantError: true,
			errorMsg:  "max_workers",
		},
		{
			name: "invalid log level",
			config: &Config{
				Session: SessionConfig{RootDir: ".", SourceExtension: ".loom"},
				Logging: LoggingConfig{Level: LogLevel("verbose")},
			},
			wantError: true,
			errorMsg:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error containing %q, got nil", tt.errorMsg)
				} else if tt.errorMsg != "" && !contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestLoadConfigNoFiles(t *testing.T) {
	tmpDir := chdirTemp(t)

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.SourceExtension != ".loom" {
		t.Errorf("Expected default source_extension '.loom', got %q", cfg.Session.SourceExtension)
	}
}

func TestLoadConfigProjectFile(t *testing.T) {
	tmpDir := chdirTemp(t)

	projectConfig := `[session]
root_dir = "src"
max_workers = 4

[logging]
level = "debug"
`
	writeFile(t, filepath.Join(tmpDir, "loom.toml"), projectConfig)

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.RootDir != "src" {
		t.Errorf("Expected root_dir 'src' from project config, got %q", cfg.Session.RootDir)
	}
	if cfg.Session.MaxWorkers != 4 {
		t.Errorf("Expected max_workers 4 from project config, got %d", cfg.Session.MaxWorkers)
	}
	if cfg.Logging.Level != LogDebug {
		t.Errorf("Expected logging level 'debug' from project config, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigCLIOverride(t *testing.T) {
	tmpDir := chdirTemp(t)

	writeFile(t, filepath.Join(tmpDir, "loom.toml"), `[session]
root_dir = "src"
`)

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	overrides := &Config{Session: SessionConfig{RootDir: "cmd-line-dir"}}
	cfg, err := Load(overrides)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.RootDir != "cmd-line-dir" {
		t.Errorf("Expected root_dir 'cmd-line-dir' from CLI override, got %q", cfg.Session.RootDir)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	tmpDir := chdirTemp(t)

	writeFile(t, filepath.Join(tmpDir, "loom.toml"), `[session
root_dir = "src"
`)

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	if _, err := Load(nil); err == nil {
		t.Error("Expected error for invalid TOML, got nil")
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	tmpDir := chdirTemp(t)

	writeFile(t, filepath.Join(tmpDir, "loom.toml"), `[logging]
level = "verbose"
`)

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	_, err := Load(nil)
	if err == nil {
		t.Error("Expected validation error, got nil")
	}
	if !contains(err.Error(), "invalid configuration") {
		t.Errorf("Expected 'invalid configuration' error, got %v", err)
	}
}

func TestWorkers(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workers() <= 0 {
		t.Errorf("Expected Workers() to resolve to a positive count, got %d", cfg.Workers())
	}
	cfg.Session.MaxWorkers = 7
	if cfg.Workers() != 7 {
		t.Errorf("Expected Workers() to honor an explicit max_workers, got %d", cfg.Workers())
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "loom-test-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	return tmpDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
