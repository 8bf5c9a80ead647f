package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DatasetsConfig points at the three CSV sources the chatbot loads on start.
type DatasetsConfig struct {
	SmallTalk string `yaml:"small_talk"`
	QnA       string `yaml:"qna"`
	Flights   string `yaml:"flights"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
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

// ShellConfig selects the interactive front-end: "plain" or "tui".
type ShellConfig struct {
	Type string `yaml:"type"`
}

// RouterConfig configures response routing.
type RouterConfig struct {
	// SimilarityThreshold is exclusive: a corpus answer is used only when
	// its score is strictly above this value.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Datasets DatasetsConfig `yaml:"datasets"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Shell    ShellConfig    `yaml:"shell"`
	Router   RouterConfig   `yaml:"router"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
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

// LoadDefault tries ./config.yaml first, then ~/.config/flightchat/config.yaml.
// If neither exists, it writes defaults to ~/.config/flightchat/config.yaml and returns them.
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
	return filepath.Join(home, ".config", "flightchat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Datasets: DatasetsConfig{
			SmallTalk: "SmallTalk_Dataset.csv",
			QnA:       "QA_Dataset.csv",
			Flights:   "Flight_Dataset.csv",
		},
		Embedder: EmbedderConfig{Type: "tfidf"},
		Shell:    ShellConfig{Type: "plain"},
		Router:   RouterConfig{SimilarityThreshold: 0.2},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Datasets.SmallTalk == "" {
		cfg.Datasets.SmallTalk = "SmallTalk_Dataset.csv"
	}
	if cfg.Datasets.QnA == "" {
		cfg.Datasets.QnA = "QA_Dataset.csv"
	}
	if cfg.Datasets.Flights == "" {
		cfg.Datasets.Flights = "Flight_Dataset.csv"
	}
	if cfg.Shell.Type == "" {
		cfg.Shell.Type = "plain"
	}
	if cfg.Router.SimilarityThreshold == 0 {
		cfg.Router.SimilarityThreshold = 0.2
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
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
}
