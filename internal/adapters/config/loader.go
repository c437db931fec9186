// Package config provides the configuration loader for breakdown.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var logLevels = []string{"debug", "info", "warn", "error"}

var fallbackStrategies = []string{domain.FallbackStandardTemplate, domain.FallbackRenderPartial}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger  ports.Logger
	fs      FileSystem
	profile string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileSystem replaces the filesystem used for discovery and reads.
func WithFileSystem(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithProfile selects the <profile>-app.yml file looked up during discovery.
func WithProfile(profile string) Option {
	return func(l *Loader) {
		if profile != "" {
			l.profile = profile
		}
	}
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		Logger:  logger,
		fs:      NewOSFS(),
		profile: domain.DefaultProfile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Profile returns the selected config profile.
func (l *Loader) Profile() string {
	return l.profile
}

// Load discovers the configuration starting at cwd and returns it with defaults applied.
// When no file is found the defaults are returned, rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, root, found := l.findConfiguration(cwd)
	if !found {
		l.Logger.Debug("no configuration file found, using defaults")
		cfg := domain.DefaultConfig()
		cfg.Root = filepath.Clean(cwd)
		return cfg, nil
	}

	l.Logger.Debug(fmt.Sprintf("loading configuration from %s", configPath))

	var file File
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	cfg, err := toDomain(&file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg.Root = root
	return cfg, nil
}

// findConfiguration walks up from cwd. In each directory the profile file under
// the working directory wins over the single-file breakdown.yaml.
func (l *Loader) findConfiguration(cwd string) (configPath, root string, found bool) {
	currentDir := filepath.Clean(cwd)
	profilePath := domain.DefaultProfileConfigPath(l.profile)

	for {
		candidate := filepath.Join(currentDir, profilePath)
		if l.isFile(candidate) {
			return candidate, currentDir, true
		}

		candidate = filepath.Join(currentDir, domain.LegacyConfigFileName)
		if l.isFile(candidate) {
			return candidate, currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		readErr := zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
		return zerr.With(readErr, "path", configPath)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		parseErr := zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
		return zerr.With(parseErr, "path", configPath)
	}
	return nil
}

func toDomain(file *File) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if file.WorkingDir != "" {
		cfg.WorkingDir = file.WorkingDir
	}
	if file.AppPrompt.BaseDir != "" {
		cfg.PromptBaseDir = file.AppPrompt.BaseDir
	}
	if file.AppSchema.BaseDir != "" {
		cfg.SchemaBaseDir = file.AppSchema.BaseDir
	}

	if err := applyCache(&cfg.Cache, file.Cache); err != nil {
		return nil, err
	}

	if file.Variables.EnvPrefix != nil {
		cfg.Variables.EnvPrefix = *file.Variables.EnvPrefix
	}
	for name, value := range file.Variables.Defaults {
		cfg.Variables.Defaults[name] = value
	}

	if err := applyPolicy(&cfg.Policy, file.Policy); err != nil {
		return nil, err
	}

	cfg.Fallback.Enabled = file.Fallback.Enabled
	for key, filename := range file.Fallback.Mappings {
		cfg.Fallback.Mappings[key] = filename
	}

	cfg.Logging.JSON = file.Logging.JSON
	if file.Logging.Level != "" {
		if !slices.Contains(logLevels, file.Logging.Level) {
			return nil, invalid("logging.level", file.Logging.Level)
		}
		cfg.Logging.Level = file.Logging.Level
	}

	return cfg, nil
}

func applyCache(dst *domain.CacheConfig, dto CacheDTO) error {
	if dto.Capacity != nil {
		if *dto.Capacity <= 0 {
			return invalid("cache.capacity", *dto.Capacity)
		}
		dst.Capacity = *dto.Capacity
	}
	if dto.SaveConcurrency != nil {
		if *dto.SaveConcurrency <= 0 {
			return invalid("cache.save_concurrency", *dto.SaveConcurrency)
		}
		dst.SaveConcurrency = *dto.SaveConcurrency
	}

	var err error
	if dst.TTL, err = parseDuration("cache.ttl", dto.TTL, dst.TTL); err != nil {
		return err
	}
	if dst.ManifestFreshness, err = parseDuration("cache.manifest_freshness", dto.ManifestFreshness, dst.ManifestFreshness); err != nil {
		return err
	}
	return nil
}

func applyPolicy(dst *domain.PolicyConfig, dto PolicyDTO) error {
	if dto.RequiredVariables != nil {
		dst.RequiredVariables = slices.Clone(dto.RequiredVariables)
	}
	if dto.OptionalVariables != nil {
		dst.OptionalVariables = slices.Clone(dto.OptionalVariables)
	}

	for name, rule := range dto.Validation {
		if rule.MinLength < 0 {
			return invalid("policy.validation."+name+".min_length", rule.MinLength)
		}
		dst.Validation[name] = domain.ValidationRule{
			Required:  rule.Required,
			MinLength: rule.MinLength,
			Pattern:   rule.Pattern,
		}
	}

	if dto.MaxRetries != nil {
		if *dto.MaxRetries < 0 {
			return invalid("policy.max_retries", *dto.MaxRetries)
		}
		dst.MaxRetries = *dto.MaxRetries
	}
	if dto.TimeoutMs != nil {
		if *dto.TimeoutMs < 0 {
			return invalid("policy.timeout_ms", *dto.TimeoutMs)
		}
		dst.TimeoutMs = *dto.TimeoutMs
	}

	for _, name := range dto.FallbackStrategies {
		if !slices.Contains(fallbackStrategies, name) {
			return invalid("policy.fallback_strategies", name)
		}
	}
	dst.FallbackStrategies = slices.Clone(dto.FallbackStrategies)
	return nil
}

func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, invalid(field, raw)
	}
	return d, nil
}

func invalid(field string, value any) error {
	err := zerr.Wrap(domain.ErrInvalidConfig, field)
	return zerr.With(zerr.With(err, "field", field), "value", value)
}
