package config

import (
	_ "embed"
	"os"
	"strconv"

	"github.com/kozaktomas/facegate/internal/constants"
	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

type Config struct {
	Embedding EmbeddingConfig
	Store     StoreConfig
	Registry  RegistryConfig
	Models    ModelsConfig
}

type EmbeddingConfig struct {
	URL   string // defaults to http://localhost:8000
	Model string // face embedding model name (defaults to facenet)
}

type StoreConfig struct {
	Backend     string // sheet (default), postgres or mariadb
	SheetURL    string // spreadsheet endpoint URL for the sheet backend
	DatabaseURL string // PostgreSQL connection URL for the postgres backend
	MariaDBDSN  string // MariaDB DSN for the mariadb backend (e.g., facegate:facegate@tcp(mariadb:3306)/facegate)
}

type RegistryConfig struct {
	Threshold float64 // cosine-distance cutoff for matching (default 0.4)
}

type ModelsConfig struct {
	Models map[string]ModelSpec `yaml:"models"`
}

type ModelSpec struct {
	Dim int `yaml:"dim"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

// envOr reads an environment variable with a fallback default.
func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var models ModelsConfig
	if err := yaml.Unmarshal(modelsYAML, &models); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded models.yaml: " + err.Error())
	}

	return &Config{
		Embedding: EmbeddingConfig{
			URL:   os.Getenv("EMBEDDING_URL"),
			Model: envOr("EMBEDDING_MODEL", "facenet"),
		},
		Store: StoreConfig{
			Backend:     envOr("STORE_BACKEND", "sheet"),
			SheetURL:    os.Getenv("SHEET_URL"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			MariaDBDSN:  os.Getenv("MARIADB_DSN"),
		},
		Registry: RegistryConfig{
			Threshold: envFloat("MATCH_THRESHOLD", constants.DefaultMatchThreshold),
		},
		Models: models,
	}
}

// EmbeddingDim resolves the vector dimension for the configured embedding model.
// Unknown models fall back to the default dimension.
func (c *Config) EmbeddingDim() int {
	if spec, ok := c.Models.Models[c.Embedding.Model]; ok && spec.Dim > 0 {
		return spec.Dim
	}
	return constants.DefaultEmbeddingDim
}
