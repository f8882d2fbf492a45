package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"manualrag/internal/chunker"
	"manualrag/internal/domain"
	"manualrag/internal/logger"
	"manualrag/internal/ranker"
	"manualrag/internal/scorer"
)

// Environment variables that override values from the YAML file.
const (
	EnvManualDir    = "MANUAL_DIR"
	EnvChunkSize    = "RAG_CHUNK_SIZE"
	EnvChunkOverlap = "RAG_CHUNK_OVERLAP"
	EnvTopK         = "RAG_TOP_K"
	EnvScorer       = "RAG_SCORER"
	EnvLogLevel     = "LOG_LEVEL"
)

// DocumentsConfig locates the manual text files.
type DocumentsConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// ScorerConfig selects the similarity strategy.
type ScorerConfig struct {
	Type string `yaml:"type"`
}

// RetrievalConfig controls how many passages a search returns.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// CacheConfig enables the in-memory document snapshot.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Watch   bool `yaml:"watch"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Documents DocumentsConfig `yaml:"documents"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Scorer    ScorerConfig    `yaml:"scorer"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// Logger returns the logger settings in the form logger.New expects.
func (c *AppConfig) Logger() logger.Config {
	return logger.Config{Level: c.Log.Level, Development: c.Log.Development}
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			if err := applyEnv(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	// keys absent from the file keep their default values
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/manualrag/config.yaml.
// If neither exists, it writes defaults to ~/.config/manualrag/config.yaml and returns them.
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
	if err := applyEnv(cfg); err != nil {
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

// Validate rejects parameters the retrieval core cannot run with.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Documents.Dir) == "" {
		return domain.NewConfigurationError("documents.dir", "must not be empty")
	}
	if c.Chunker.Size <= 0 {
		return domain.NewConfigurationError("chunker.size", "must be positive, got %d", c.Chunker.Size)
	}
	if c.Chunker.Overlap < 0 || c.Chunker.Overlap >= c.Chunker.Size {
		return domain.NewConfigurationError("chunker.overlap", "must be in [0, %d), got %d", c.Chunker.Size, c.Chunker.Overlap)
	}
	if c.Retrieval.TopK < 0 {
		return domain.NewConfigurationError("retrieval.top_k", "must not be negative, got %d", c.Retrieval.TopK)
	}
	if _, err := scorer.New(c.Scorer.Type); err != nil {
		return err
	}
	if c.Cache.Watch && !c.Cache.Enabled {
		return domain.NewConfigurationError("cache.watch", "requires cache.enabled")
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "manualrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Documents: DocumentsConfig{Dir: filepath.Join("data", "manuals"), Extensions: []string{".txt"}},
		Chunker:   ChunkerConfig{Size: chunker.DefaultChunkSize, Overlap: chunker.DefaultOverlap},
		Scorer:    ScorerConfig{Type: scorer.DefaultType},
		Retrieval: RetrievalConfig{TopK: ranker.DefaultTopK},
		Log:       LogConfig{Level: "info"},
	}
}

// applyConfigDefaults replaces explicit empty values that have no meaning.
// An explicit top_k of 0 is kept: it is a valid setting that disables retrieval.
func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = def.Documents.Dir
	}
	if len(cfg.Documents.Extensions) == 0 {
		cfg.Documents.Extensions = def.Documents.Extensions
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = def.Chunker.Size
	}
	if cfg.Scorer.Type == "" {
		cfg.Scorer.Type = def.Scorer.Type
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

func applyEnv(cfg *AppConfig) error {
	if v, ok := lookupEnv(EnvManualDir); ok {
		cfg.Documents.Dir = v
	}
	if v, ok := lookupEnv(EnvScorer); ok {
		cfg.Scorer.Type = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	ints := []struct {
		env string
		dst *int
	}{
		{EnvChunkSize, &cfg.Chunker.Size},
		{EnvChunkOverlap, &cfg.Chunker.Overlap},
		{EnvTopK, &cfg.Retrieval.TopK},
	}
	for _, in := range ints {
		v, ok := lookupEnv(in.env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.NewConfigurationError(in.env, "not an integer: %q", v)
		}
		*in.dst = n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
