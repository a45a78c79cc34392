// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Neo4jConfig holds the connection settings for the document store.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// GeminiConfig holds the report-generation settings. An empty APIKey
// disables report generation; callers then get ErrServiceUnavailable.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Config is the full service configuration.
type Config struct {
	ListenAddr string            `yaml:"listen_addr"`
	Neo4j      Neo4jConfig       `yaml:"neo4j"`
	Gemini     GeminiConfig      `yaml:"gemini"`
	OAuth      map[string]string `yaml:"oauth"` // provider -> authorize URL
	PrefsPath  string            `yaml:"prefs_path"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		ListenAddr: "0.0.0.0:8080",
		Neo4j: Neo4jConfig{
			URI:      "neo4j://neo4j:7687",
			Username: "neo4j",
			Password: "password",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		OAuth:     map[string]string{},
		PrefsPath: "preferences.json",
	}
}

// Load reads path if it exists, then applies environment overrides. A
// missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.ListenAddr, "TASKAN_LISTEN_ADDR")
	setIfPresent(&c.Neo4j.URI, "TASKAN_NEO4J_URI")
	setIfPresent(&c.Neo4j.Username, "TASKAN_NEO4J_USER")
	setIfPresent(&c.Neo4j.Password, "TASKAN_NEO4J_PASSWORD")
	setIfPresent(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setIfPresent(&c.Gemini.Model, "TASKAN_GEMINI_MODEL")
	setIfPresent(&c.PrefsPath, "TASKAN_PREFS_PATH")
}

func setIfPresent(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
