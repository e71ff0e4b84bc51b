package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the insight tool.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig holds review ingestion configuration.
type DataConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// RetrieveConfig holds evidence retrieval configuration.
type RetrieveConfig struct {
	VectorLimit  int `yaml:"vector_limit"`  // top-k pulled from the vector index
	MaxEvidence  int `yaml:"max_evidence"`  // cap on the fused evidence set
	CacheSize    int `yaml:"cache_size"`    // cached gather results
	CacheTTLSecs int `yaml:"cache_ttl_secs"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Provider    string `yaml:"provider"` // "openai", "ollama", "mock"
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Dimension   int    `yaml:"dimension"`
	BatchSize   int    `yaml:"batch_size"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// LLMConfig holds language model configuration.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "ollama"
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Includes: []string{"**/*.csv"},
			Excludes: []string{"**/.insight/**", "**/node_modules/**", "**/.git/**"},
		},
		Retrieve: RetrieveConfig{
			VectorLimit:  50,
			MaxEvidence:  100,
			CacheSize:    100,
			CacheTTLSecs: 300,
		},
		Embedding: EmbeddingConfig{
			Enabled:     true,
			Provider:    "ollama",
			Model:       "all-minilm",
			APIKeyEnv:   "OPENAI_API_KEY",
			Dimension:   0, // 0 = derive from model
			BatchSize:   100,
			TimeoutSecs: 120,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.2,
			MaxTokens:   2000,
			TimeoutSecs: 120,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for insight.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "insight.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".insight", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StateDir returns the directory holding persisted stores.
func StateDir(dir string) string {
	return filepath.Join(dir, ".insight")
}

// ReviewDBPath returns the path to the keyword review database.
func ReviewDBPath(dir string) string {
	return filepath.Join(StateDir(dir), "reviews.db")
}

// VectorDir returns the directory holding the vector index artifacts.
func VectorDir(dir string) string {
	return filepath.Join(StateDir(dir), "vectors")
}

// EnsureStateDir ensures the .insight directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(VectorDir(dir), 0755)
}
