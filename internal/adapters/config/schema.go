package config

// File is the on-disk shape of a breakdown configuration file.
type File struct {
	WorkingDir string      `yaml:"working_dir"`
	AppPrompt  BaseDirDTO  `yaml:"app_prompt"`
	AppSchema  BaseDirDTO  `yaml:"app_schema"`
	Cache      CacheDTO    `yaml:"cache"`
	Variables  VariableDTO `yaml:"variables"`
	Policy     PolicyDTO   `yaml:"policy"`
	Fallback   FallbackDTO `yaml:"fallback"`
	Logging    LoggingDTO  `yaml:"logging"`
}

// BaseDirDTO names a directory under the working directory.
type BaseDirDTO struct {
	BaseDir string `yaml:"base_dir"`
}

// CacheDTO tunes repository caching. Durations use time.ParseDuration syntax.
type CacheDTO struct {
	Capacity          *int   `yaml:"capacity"`
	TTL               string `yaml:"ttl"`
	ManifestFreshness string `yaml:"manifest_freshness"`
	SaveConcurrency   *int   `yaml:"save_concurrency"`
}

// VariableDTO tunes variable resolution.
type VariableDTO struct {
	EnvPrefix *string           `yaml:"env_prefix"`
	Defaults  map[string]string `yaml:"defaults"`
}

// PolicyDTO drives the generation policy.
type PolicyDTO struct {
	RequiredVariables  []string           `yaml:"required_variables"`
	OptionalVariables  []string           `yaml:"optional_variables"`
	Validation         map[string]RuleDTO `yaml:"validation"`
	MaxRetries         *int               `yaml:"max_retries"`
	TimeoutMs          *int               `yaml:"timeout_ms"`
	FallbackStrategies []string           `yaml:"fallback_strategies"`
}

// RuleDTO declares constraints for a single variable.
type RuleDTO struct {
	Required  bool   `yaml:"required"`
	MinLength int    `yaml:"min_length"`
	Pattern   string `yaml:"pattern"`
}

// FallbackDTO holds the directive/layer override table.
type FallbackDTO struct {
	Enabled  bool              `yaml:"enabled"`
	Mappings map[string]string `yaml:"mappings"`
}

// LoggingDTO selects the log format and level.
type LoggingDTO struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}
