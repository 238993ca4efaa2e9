// Package config loads repoqa configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds global configuration.
type Config struct {
	Indexing IndexingConfig `yaml:"indexing"`
	Search   SearchConfig   `yaml:"search"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type IndexingConfig struct {
	// MaxChunkSize is the chunk size ceiling in characters.
	MaxChunkSize int `yaml:"max_chunk_size"`
	// MaxFileSize is the per-file size ceiling in bytes.
	MaxFileSize int64    `yaml:"max_file_size"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
}

type SearchConfig struct {
	K1       float64 `yaml:"k1"`
	B        float64 `yaml:"b"`
	Delta    float64 `yaml:"delta"`
	DefaultK int     `yaml:"default_k"`
}

type StorageConfig struct {
	// IndexPath is the SQLite index database location.
	IndexPath string `yaml:"index_path"`
	// RedisURL enables the query-result cache when non-empty.
	RedisURL string `yaml:"redis_url"`
}

type LLMConfig struct {
	// BaseURL points at an OpenAI-compatible endpoint; the default is a
	// local Ollama server.
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// TokenBudget caps the context assembled into the answer prompt.
	TokenBudget int `yaml:"token_budget"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // error|warn|info|debug
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Indexing: IndexingConfig{
			MaxChunkSize: 2000,
			MaxFileSize:  1 << 20,
		},
		Search: SearchConfig{
			K1:       1.5,
			B:        0.75,
			Delta:    1.0,
			DefaultK: 10,
		},
		Storage: StorageConfig{
			IndexPath: "repoqa.db",
		},
		LLM: LLMConfig{
			BaseURL:     "http://localhost:11434/v1",
			Model:       "qwen3:0.6b",
			TokenBudget: 3000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads config from file or returns defaults when the file does not
// exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
