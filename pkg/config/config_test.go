package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range apiKeyEnv {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	clearKeyEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	data := []byte(`{
  "provider": "anthropic",
  "api_key": "test-key",
  "models": {"resume": "claude-opus-4-1"},
  "output_dir": "./test-output",
  "escaping": {"fields": {"summary": "full"}}
}`)

	err := os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIKey != "test-key" {
		t.Errorf("Expected API key test-key, got %s", cfg.APIKey)
	}

	if cfg.Models.Resume != "claude-opus-4-1" {
		t.Errorf("Expected resume model override, got %s", cfg.Models.Resume)
	}

	if cfg.OutputDir != "./test-output" {
		t.Errorf("Expected output dir ./test-output, got %s", cfg.OutputDir)
	}

	// Unset values keep their defaults.
	if cfg.MaxTokens.Resume != 2000 || cfg.MaxTokens.CoverLetter != 1000 {
		t.Errorf("Expected default token limits, got %+v", cfg.MaxTokens)
	}

	if cfg.Engine.Command != "pdflatex" {
		t.Errorf("Expected default engine, got %s", cfg.Engine.Command)
	}

	policy, err := cfg.EscapePolicy()
	if err != nil {
		t.Fatalf("EscapePolicy failed: %v", err)
	}

	if policy.TableFor("summary").Name() != "full" {
		t.Error("Expected summary override to apply")
	}

	if policy.TableFor("cover_letter").Name() != "full" {
		t.Error("Expected cover letter default to survive a partial fields map")
	}

	if policy.TableFor("name").Name() != "minimal" {
		t.Error("Expected minimal default")
	}
}

func TestLoadYAML(t *testing.T) {
	clearKeyEnv(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	data := []byte(`provider: gemini
api_key: yaml-key
max_tokens:
  resume: 4000
engine:
  command: xelatex
  args: ["-interaction=batchmode"]
keep_extensions: [".pdf"]
`)

	err := os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Errorf("Expected provider gemini, got %s", cfg.Provider)
	}

	if cfg.MaxTokens.Resume != 4000 || cfg.MaxTokens.CoverLetter != 1000 {
		t.Errorf("Unexpected token limits %+v", cfg.MaxTokens)
	}

	engine := cfg.TypesetEngine()
	if engine.Command != "xelatex" || len(engine.Args) != 1 || engine.Args[0] != "-interaction=batchmode" {
		t.Errorf("Unexpected engine %+v", engine)
	}

	if len(cfg.KeepExtensions) != 1 {
		t.Errorf("Expected keep list to be replaced, got %v", cfg.KeepExtensions)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("OPENAI_API_KEY", "wrong-provider-key")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, []byte(`{"provider": "Anthropic", "api_key": "file-key"}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	key, err := cfg.CompletionKey()
	if err != nil {
		t.Fatalf("CompletionKey failed: %v", err)
	}

	if key != "env-key" {
		t.Errorf("Expected env-key, got %s", key)
	}
}

func TestLoadClaudeAlias(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, []byte(`{"provider": "Claude"}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Expected claude alias to load, got: %v", err)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Expected provider anthropic, got %s", cfg.Provider)
	}

	key, err := cfg.CompletionKey()
	if err != nil {
		t.Fatalf("CompletionKey failed: %v", err)
	}

	if key != "env-key" {
		t.Errorf("Expected env-key, got %s", key)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}

	if cfg.ResumePath != "resume.json" || cfg.JobDescription != "job_description.txt" || cfg.OutputDir != "./resume" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}

	if _, err = cfg.CompletionKey(); err == nil {
		t.Error("Expected missing API key error")
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, []byte(`{"provider": "openai",`), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Expected parse error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{
			name:      "defaults",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "unknown provider",
			mutate:    func(c *Config) { c.Provider = "cohere" },
			wantError: true,
		},
		{
			name:      "zero resume tokens",
			mutate:    func(c *Config) { c.MaxTokens.Resume = 0 },
			wantError: true,
		},
		{
			name:      "negative cover tokens",
			mutate:    func(c *Config) { c.MaxTokens.CoverLetter = -1 },
			wantError: true,
		},
		{
			name:      "missing engine",
			mutate:    func(c *Config) { c.Engine.Command = "" },
			wantError: true,
		},
		{
			name:      "unknown escaping default",
			mutate:    func(c *Config) { c.Escaping.Default = "paranoid" },
			wantError: true,
		},
		{
			name:      "unknown escaping field table",
			mutate:    func(c *Config) { c.Escaping.Fields["summary"] = "paranoid" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.json")

	path, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	if path != configPath {
		t.Errorf("Expected path %s, got %s", configPath, path)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if cfg.OutputDir == "" {
		t.Error("Default output dir was not set")
	}

	if cfg.APIKey == "" {
		t.Error("Placeholder API key was not set")
	}
}

func TestInitConfigYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	_, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Config is not YAML: %v", err)
	}

	if cfg.Escaping.Fields["cover_letter"] != "full" {
		t.Errorf("Expected cover letter escaping in YAML config, got %v", cfg.Escaping.Fields)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	_, err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
