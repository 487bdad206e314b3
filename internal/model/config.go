package model

import (
	"runtime"
	"time"
)

// Config is the full slotparse configuration
type Config struct {
	Parser ParserConfig `yaml:"parser" mapstructure:"parser"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ParserConfig controls language parsers
type ParserConfig struct {
	Lang          string   `yaml:"lang" mapstructure:"lang"`                       // default language code
	Kinds         []string `yaml:"kinds" mapstructure:"kinds"`                     // default kind filter, empty = all
	MaxQueryBytes int      `yaml:"max_query_bytes" mapstructure:"max_query_bytes"` // 0 = unlimited
}

// CacheConfig controls the in-memory response cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// BatchConfig controls batch processing
type BatchConfig struct {
	Concurrency       int           `yaml:"concurrency" mapstructure:"concurrency"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // per language, 0 = unlimited
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // json, jsonl, yaml
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Lang:          "en",
			MaxQueryBytes: 16 * 1024,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Batch: BatchConfig{
			Concurrency: runtime.NumCPU(),
			Burst:       5,
			Timeout:     10 * time.Minute,
		},
		Output: OutputConfig{
			Format: "json",
			Pretty: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
