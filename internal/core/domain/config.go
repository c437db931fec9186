package domain

import (
	"path/filepath"
	"time"
)

const (
	// DefaultCacheCapacity is the maximum number of cached documents per repository.
	DefaultCacheCapacity = 100
	// DefaultCacheTTL is how long a cached document stays valid.
	DefaultCacheTTL = 5 * time.Minute
	// DefaultManifestFreshness is how long a generated manifest is reused.
	DefaultManifestFreshness = 60 * time.Second
	// DefaultEnvPrefix prefixes environment variable lookups.
	DefaultEnvPrefix = "BREAKDOWN_"
	// DefaultMaxRetries is the advisory retry budget handed to callers.
	DefaultMaxRetries = 3
	// DefaultTimeoutMs is the advisory per-request timeout handed to callers.
	DefaultTimeoutMs = 30000
)

// CacheConfig tunes repository caching.
type CacheConfig struct {
	Capacity          int
	TTL               time.Duration
	ManifestFreshness time.Duration
	SaveConcurrency   int
}

// VariablesConfig tunes the environment and default resolution strategies.
type VariablesConfig struct {
	EnvPrefix string
	Defaults  map[string]string
}

// FallbackConfig holds the directive/layer override table.
type FallbackConfig struct {
	Enabled  bool
	Mappings map[string]string
}

// LoggingConfig selects the log format and level.
type LoggingConfig struct {
	JSON  bool
	Level string
}

// Config is the fully parsed application configuration.
type Config struct {
	// Root is the directory the configuration was discovered in.
	Root          string
	WorkingDir    string
	PromptBaseDir string
	SchemaBaseDir string
	Cache         CacheConfig
	Variables     VariablesConfig
	Policy        PolicyConfig
	Fallback      FallbackConfig
	Logging       LoggingConfig
}

// DefaultConfig returns the configuration used when no file overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Root:          ".",
		WorkingDir:    DefaultWorkingDir,
		PromptBaseDir: DefaultPromptDir,
		SchemaBaseDir: DefaultSchemaDir,
		Cache: CacheConfig{
			Capacity:          DefaultCacheCapacity,
			TTL:               DefaultCacheTTL,
			ManifestFreshness: DefaultManifestFreshness,
			SaveConcurrency:   1,
		},
		Variables: VariablesConfig{
			EnvPrefix: DefaultEnvPrefix,
			Defaults:  map[string]string{},
		},
		Policy: PolicyConfig{
			OptionalVariables: []string{VarInputTextFile, VarDestinationPath},
			Validation:        map[string]ValidationRule{},
			MaxRetries:        DefaultMaxRetries,
			TimeoutMs:         DefaultTimeoutMs,
		},
		Fallback: FallbackConfig{
			Mappings: map[string]string{},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// PromptRoot returns the directory holding templates.
func (c *Config) PromptRoot() string {
	return resolveUnder(c.Root, c.WorkingDir, c.PromptBaseDir)
}

// SchemaRoot returns the directory holding schemas.
func (c *Config) SchemaRoot() string {
	return resolveUnder(c.Root, c.WorkingDir, c.SchemaBaseDir)
}

func resolveUnder(root, workingDir, base string) string {
	if filepath.IsAbs(base) {
		return base
	}
	if filepath.IsAbs(workingDir) {
		return filepath.Join(workingDir, base)
	}
	return filepath.Join(root, workingDir, base)
}
