package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GoogleSearchConfig holds configuration for the Google Custom Search
// provider. Credentials are named by environment variable, not stored.
type GoogleSearchConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	EngineIDEnv string `yaml:"engine_id_env"`
	MaxResults  int    `yaml:"max_results"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SearchConfig selects and configures the web search provider.
type SearchConfig struct {
	Type   string              `yaml:"type"`
	Google *GoogleSearchConfig `yaml:"google,omitempty"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible
// embedder. A local Ollama endpoint works by pointing base_url at it and
// leaving api_key_env empty.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// OpenAIReportConfig holds configuration for the chat-completion report
// generator. The default endpoint is Groq's OpenAI-compatible API.
type OpenAIReportConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// ReportConfig selects and configures the report generator.
type ReportConfig struct {
	Type   string              `yaml:"type"`
	OpenAI *OpenAIReportConfig `yaml:"openai,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Search   SearchConfig   `yaml:"search"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Report   ReportConfig   `yaml:"report"`
	TopN     int            `yaml:"top_n"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/marketcheck/config.yaml.
// If neither exists, it writes defaults to ~/.config/marketcheck/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "marketcheck", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Search:   SearchConfig{Type: "google"},
		Embedder: EmbedderConfig{Type: "openai"},
		Report:   ReportConfig{Type: "openai"},
		TopN:     5,
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.TopN == 0 {
		cfg.TopN = 5
	}
	if cfg.Search.Type == "google" || cfg.Search.Type == "" {
		if cfg.Search.Google == nil {
			cfg.Search.Google = &GoogleSearchConfig{}
		}
		if cfg.Search.Google.BaseURL == "" {
			cfg.Search.Google.BaseURL = "https://www.googleapis.com/customsearch/v1"
		}
		if cfg.Search.Google.APIKeyEnv == "" {
			cfg.Search.Google.APIKeyEnv = "GOOGLE_API_KEY"
		}
		if cfg.Search.Google.EngineIDEnv == "" {
			cfg.Search.Google.EngineIDEnv = "GOOGLE_CSE_ID"
		}
		if cfg.Search.Google.MaxResults == 0 {
			cfg.Search.Google.MaxResults = 10
		}
		if cfg.Search.Google.TimeoutSecs == 0 {
			cfg.Search.Google.TimeoutSecs = 30
		}
	}
	if cfg.Embedder.Type == "openai" || cfg.Embedder.Type == "" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Report.Type == "openai" || cfg.Report.Type == "" {
		if cfg.Report.OpenAI == nil {
			cfg.Report.OpenAI = &OpenAIReportConfig{}
		}
		if cfg.Report.OpenAI.BaseURL == "" {
			cfg.Report.OpenAI.BaseURL = "https://api.groq.com/openai/v1"
		}
		if cfg.Report.OpenAI.APIKeyEnv == "" {
			cfg.Report.OpenAI.APIKeyEnv = "GROQ_API_KEY"
		}
		if cfg.Report.OpenAI.Model == "" {
			cfg.Report.OpenAI.Model = "llama-3.1-8b-instant"
		}
		if cfg.Report.OpenAI.Temperature == 0 {
			cfg.Report.OpenAI.Temperature = 0.3
		}
		if cfg.Report.OpenAI.TimeoutSecs == 0 {
			cfg.Report.OpenAI.TimeoutSecs = 60
		}
	}
}
