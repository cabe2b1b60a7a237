package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nikogura/resume-latex/pkg/latex"
	"github.com/nikogura/resume-latex/pkg/llm"
	"github.com/nikogura/resume-latex/pkg/resume"
	"github.com/nikogura/resume-latex/pkg/typeset"
)

// Config represents the application configuration.
type Config struct {
	Provider       string          `json:"provider" yaml:"provider"`
	APIKey         string          `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Models         ModelsConfig    `json:"models,omitempty" yaml:"models,omitempty"`
	MaxTokens      MaxTokensConfig `json:"max_tokens" yaml:"max_tokens"`
	ResumePath     string          `json:"resume_path" yaml:"resume_path"`
	JobDescription string          `json:"job_description" yaml:"job_description"`
	OutputDir      string          `json:"output_dir" yaml:"output_dir"`
	Engine         EngineConfig    `json:"engine" yaml:"engine"`
	KeepExtensions []string        `json:"keep_extensions" yaml:"keep_extensions"`
	Escaping       EscapingConfig  `json:"escaping" yaml:"escaping"`
	PinFields      []string        `json:"pin_fields" yaml:"pin_fields"`
}

// ModelsConfig holds model selection per completion. Empty means provider default.
type ModelsConfig struct {
	Resume      string `json:"resume,omitempty" yaml:"resume,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty" yaml:"cover_letter,omitempty"`
}

// MaxTokensConfig bounds each completion.
type MaxTokensConfig struct {
	Resume      int `json:"resume" yaml:"resume"`
	CoverLetter int `json:"cover_letter" yaml:"cover_letter"`
}

// EngineConfig holds the typesetting engine invocation.
type EngineConfig struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args" yaml:"args"`
}

// EscapingConfig maps field patterns to escaping table names.
type EscapingConfig struct {
	Default string            `json:"default" yaml:"default"`
	Fields  map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// apiKeyEnv names the environment variable that overrides api_key per provider.
//
//nolint:gochecknoglobals // provider lookup table
var apiKeyEnv = map[string]string{
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// Default returns the built-in configuration.
func Default() (cfg Config) {
	cfg = Config{
		Provider: llm.ProviderOpenAI,
		MaxTokens: MaxTokensConfig{
			Resume:      2000,
			CoverLetter: 1000,
		},
		ResumePath:     "resume.json",
		JobDescription: "job_description.txt",
		OutputDir:      "./resume",
		Engine: EngineConfig{
			Command: typeset.DefaultCommand,
			Args:    []string{typeset.DefaultArg},
		},
		KeepExtensions: append([]string(nil), typeset.DefaultKeepExtensions...),
		Escaping: EscapingConfig{
			Default: latex.Minimal.Name(),
			Fields: map[string]string{
				latex.CoverLetterField: latex.Full.Name(),
			},
		},
		PinFields: append([]string(nil), resume.DefaultPinnedFields...),
	}
	return cfg
}

// DefaultPath returns $HOME/.resume-latex/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-latex", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
// Values missing from the file keep their defaults. With no path and no
// file at the default location, the built-in defaults are used.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = decode(path, data, &cfg)
		if err != nil {
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-latex init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.Provider = llm.NormalizeProvider(cfg.Provider)
	if envName, ok := apiKeyEnv[cfg.Provider]; ok {
		if apiKey := os.Getenv(envName); apiKey != "" {
			cfg.APIKey = apiKey
		}
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func decode(path string, data []byte, cfg *Config) (err error) {
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return err
	}
	return err
}

func isYAML(path string) (ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	ok = ext == ".yaml" || ext == ".yml"
	return ok
}

// Validate checks that the configuration is usable. The API key is checked
// separately by CompletionKey since local builds do not need one.
func (c *Config) Validate() (err error) {
	if _, ok := apiKeyEnv[c.Provider]; !ok {
		err = errors.Errorf("provider must be one of %s, %s or %s, got %q",
			llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini, c.Provider)
		return err
	}

	if c.MaxTokens.Resume <= 0 {
		err = errors.New("max_tokens.resume must be positive")
		return err
	}

	if c.MaxTokens.CoverLetter <= 0 {
		err = errors.New("max_tokens.cover_letter must be positive")
		return err
	}

	if c.Engine.Command == "" {
		err = errors.New("engine.command is required in config")
		return err
	}

	_, err = c.EscapePolicy()
	if err != nil {
		return err
	}

	if c.OutputDir == "" {
		c.OutputDir = "./resume"
	}

	return err
}

// CompletionKey returns the API key for the configured provider.
func (c *Config) CompletionKey() (key string, err error) {
	if c.APIKey == "" {
		err = errors.Errorf("api_key is required (set in config or %s env var)", apiKeyEnv[c.Provider])
		return key, err
	}
	key = c.APIKey
	return key, err
}

// EscapePolicy builds the escaping policy from the escaping section.
func (c *Config) EscapePolicy() (policy latex.Policy, err error) {
	policy.Default, err = latex.TableByName(c.Escaping.Default)
	if err != nil {
		err = errors.Wrap(err, "escaping.default")
		return policy, err
	}

	policy.Fields = make(map[string]latex.Table, len(c.Escaping.Fields))
	for pattern, name := range c.Escaping.Fields {
		var table latex.Table
		table, err = latex.TableByName(name)
		if err != nil {
			err = errors.Wrapf(err, "escaping.fields[%s]", pattern)
			return policy, err
		}
		policy.Fields[pattern] = table
	}

	return policy, err
}

// TypesetEngine returns the configured engine.
func (c *Config) TypesetEngine() (engine typeset.Engine) {
	engine = typeset.Engine{
		Command: c.Engine.Command,
		Args:    append([]string(nil), c.Engine.Args...),
	}
	return engine
}

// InitConfig creates a default configuration file, YAML when the path
// ends in .yaml or .yml.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	defaultConfig := Default()
	defaultConfig.APIKey = "sk-..."

	var data []byte
	if isYAML(path) {
		data, err = yaml.Marshal(defaultConfig)
	} else {
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
