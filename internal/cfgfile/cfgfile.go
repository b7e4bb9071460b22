// Package cfgfile discovers and loads kreuzberg.toml / pyproject-style
// [tool.kreuzberg] configuration, following the directory-walk-to-root
// discovery rule and rejecting legacy v3 flat keys.
package cfgfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"

	kreuzberg "github.com/stackvity/kreuzberg-go/internal/kreuzbergtypes"
)

// legacyV3Keys are flat top-level keys from the old configuration format.
// Any of these being present is a hard validation failure: the caller must
// migrate to the nested v4 shape.
var legacyV3Keys = []string{
	"ocr_backend",
	"chunk_content",
	"extract_tables",
	"extract_keywords",
	"extract_entities",
	"auto_detect_language",
	"keyword_count",
}

// RuntimeConfig holds process-wide settings that are not per-extraction
// (cache locations, concurrency, logging), loaded once at startup.
type RuntimeConfig struct {
	Environment            string `mapstructure:"KREUZBERG_ENVIRONMENT"`
	LogLevel               string `mapstructure:"KREUZBERG_LOG_LEVEL"`
	LogFormat              string `mapstructure:"KREUZBERG_LOG_FORMAT"`
	CacheDir               string `mapstructure:"KREUZBERG_CACHE_DIR"`
	CacheTTLSeconds        int    `mapstructure:"KREUZBERG_CACHE_TTL_SECONDS"`
	CacheMaxBytes          int64  `mapstructure:"KREUZBERG_CACHE_MAX_BYTES"`
	ModelCacheDir          string `mapstructure:"KREUZBERG_MODEL_CACHE"`
	MaxConcurrency         int    `mapstructure:"KREUZBERG_MAX_CONCURRENCY"`
	TesseractDataDir       string `mapstructure:"KREUZBERG_TESSDATA_PREFIX"`
	CloudVisionAPIKey      string `mapstructure:"KREUZBERG_CLOUD_VISION_API_KEY"`
	TableDetectionEndpoint string `mapstructure:"KREUZBERG_TABLE_DETECTION_ENDPOINT"`
	TableDetectionAPIKey   string `mapstructure:"KREUZBERG_TABLE_DETECTION_API_KEY"`
}

// Discover walks from dir up to the filesystem root looking for kreuzberg.toml
// or a pyproject.toml containing a [tool.kreuzberg] table. It returns the
// path of the first match, or "" if none is found.
func Discover(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving config search root: %w", err)
	}
	for {
		candidate := filepath.Join(current, "kreuzberg.toml")
		if fileExists(candidate) {
			return candidate, nil
		}
		pyproject := filepath.Join(current, "pyproject.toml")
		if fileExists(pyproject) {
			if hasToolKreuzbergTable(pyproject) {
				return pyproject, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasToolKreuzbergTable(path string) bool {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return false
	}
	return tree.Has("tool.kreuzberg")
}

// LoadExtractionConfig reads an ExtractionConfig from the discovered config
// file (if any), rejecting any legacy v3 flat keys with a ValidationError
// naming every offending key.
func LoadExtractionConfig(path string) (*kreuzberg.ExtractionConfig, error) {
	if path == "" {
		return kreuzberg.DefaultExtractionConfig(), nil
	}

	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	root := tree
	if filepath.Base(path) == "pyproject.toml" {
		sub, ok := tree.Get("tool.kreuzberg").(*toml.Tree)
		if !ok {
			return kreuzberg.DefaultExtractionConfig(), nil
		}
		root = sub
	}

	var found []string
	for _, key := range legacyV3Keys {
		if root.Has(key) {
			found = append(found, key)
		}
	}
	if len(found) > 0 {
		return nil, kreuzberg.NewValidationError(
			"legacy v3 configuration keys are no longer supported; migrate to the nested v4 schema",
			map[string]any{"v3_fields_found": found},
		)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	src := v
	if root != tree {
		src = v.Sub("tool.kreuzberg")
	}

	cfg := kreuzberg.DefaultExtractionConfig()
	// Decode by the config types' toml tags so snake_case keys such as
	// use_cache map onto their fields.
	tomlTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "toml" }
	if err := src.Unmarshal(cfg, tomlTags); err != nil {
		return nil, fmt.Errorf("unmarshaling config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadRuntimeConfig loads process-wide settings from environment variables,
// falling back through KREUZBERG_* -> HF_HOME -> TRANSFORMERS_CACHE ->
// implementation default for the model cache directory, per the engine's
// external env-var precedence contract.
func LoadRuntimeConfig() (RuntimeConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("KREUZBERG_ENVIRONMENT", "development")
	v.SetDefault("KREUZBERG_LOG_LEVEL", "info")
	v.SetDefault("KREUZBERG_LOG_FORMAT", "console")
	v.SetDefault("KREUZBERG_CACHE_DIR", defaultCacheDir())
	v.SetDefault("KREUZBERG_CACHE_TTL_SECONDS", 7*24*3600)
	v.SetDefault("KREUZBERG_CACHE_MAX_BYTES", int64(2)<<30)
	v.SetDefault("KREUZBERG_MAX_CONCURRENCY", 0)
	// Unmarshal only sees keys viper already knows about, so settings with
	// no default are bound to their environment variables explicitly.
	for _, key := range []string{
		"KREUZBERG_MODEL_CACHE",
		"KREUZBERG_TESSDATA_PREFIX",
		"KREUZBERG_CLOUD_VISION_API_KEY",
		"KREUZBERG_TABLE_DETECTION_ENDPOINT",
		"KREUZBERG_TABLE_DETECTION_API_KEY",
	} {
		_ = v.BindEnv(key)
	}

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("unmarshaling runtime config: %w", err)
	}

	if cfg.ModelCacheDir == "" {
		cfg.ModelCacheDir = resolveModelCacheDir()
	}
	return cfg, nil
}

// resolveModelCacheDir implements the KREUZBERG_MODEL_CACHE -> HF_HOME ->
// TRANSFORMERS_CACHE -> implementation-default precedence chain.
func resolveModelCacheDir() string {
	if v := os.Getenv("KREUZBERG_MODEL_CACHE"); v != "" {
		return v
	}
	if v := os.Getenv("HF_HOME"); v != "" {
		return v
	}
	if v := os.Getenv("TRANSFORMERS_CACHE"); v != "" {
		return v
	}
	return defaultCacheDir()
}

func defaultCacheDir() string {
	home, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "kreuzberg")
	}
	return filepath.Join(home, "kreuzberg")
}
