// Package config assembles the distmap configuration from defaults, an
// optional distmap.yaml, an optional .env file and DISTMAP_* environment
// variables. CLI flags are applied last by the caller.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/distmap/internal/domain"
)

const (
	DefaultFile    = "distmap.yaml"
	DefaultEnvFile = ".env"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvBaseURL          = "DISTMAP_BASE_URL"
	EnvTimeout          = "DISTMAP_TIMEOUT"
	EnvColor            = "DISTMAP_COLOR"
	EnvDataDir          = "DISTMAP_DATA_DIR"
	EnvOutputDir        = "DISTMAP_OUTPUT_DIR"
	EnvFoldAccents      = "DISTMAP_FOLD_ACCENTS"
	EnvSuggestThreshold = "DISTMAP_SUGGEST_THRESHOLD"
	EnvLogLevel         = "DISTMAP_LOG_LEVEL"
	EnvLogFormat        = "DISTMAP_LOG_FORMAT"
)

type Options struct {
	// File is an explicit config path; it must exist when set.
	File string
	// Dir is where DefaultFile and DefaultEnvFile are looked up when File is empty.
	Dir string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds the configuration. Missing default files are not an error.
func Load(opts Options) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := opts.File
	if path == "" {
		candidate := filepath.Join(opts.Dir, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		var err error
		cfg, err = LoadFile(path, cfg)
		if err != nil {
			return domain.DefaultConfig(), err
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv, err := readDotEnv(filepath.Join(opts.Dir, DefaultEnvFile))
	if err != nil {
		return domain.DefaultConfig(), err
	}

	// Real environment variables win over .env entries.
	merged := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	return ApplyEnv(cfg, merged)
}

// LoadFile reads a distmap.yaml and applies it on top of base.
func LoadFile(path string, base domain.Config) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, &domain.OpError{
			Op:   "config.load_file",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y YAMLFile
	if err := yaml.Unmarshal(b, &y); err != nil {
		return base, &domain.OpError{
			Op:   "config.load_file",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, base, y.Distmap)
}

// ApplyEnv overrides cfg with DISTMAP_* variables found through lookup.
func ApplyEnv(cfg domain.Config, lookup func(string) (string, bool)) (domain.Config, error) {
	return apply(cfg, lookup, func(key string) string { return key })
}

// ApplyFlags overrides cfg with command line values keyed by the DISTMAP_*
// variable names. Only flags the user actually set belong in values.
func ApplyFlags(cfg domain.Config, values map[string]string) (domain.Config, error) {
	lookup := func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
	return apply(cfg, lookup, func(string) string { return "command line" })
}

func apply(cfg domain.Config, lookup func(string) (string, bool), origin func(string) string) (domain.Config, error) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get(EnvBaseURL); ok {
		cfg.Service.BaseURL = v
	}
	if v, ok := get(EnvTimeout); ok {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, invalidField(origin(EnvTimeout), "service.timeout", err.Error())
		}
		cfg.Service.Timeout = d
	}
	if v, ok := get(EnvColor); ok {
		cfg.Map.Color = v
	}
	if v, ok := get(EnvDataDir); ok {
		cfg.Paths.DataDir = v
	}
	if v, ok := get(EnvOutputDir); ok {
		cfg.Paths.OutputDir = v
	}
	if v, ok := get(EnvFoldAccents); ok {
		b, err := parseBool(v)
		if err != nil {
			return cfg, invalidField(origin(EnvFoldAccents), "resolver.fold_accents", err.Error())
		}
		cfg.Resolver.FoldAccents = b
	}
	if v, ok := get(EnvSuggestThreshold); ok {
		f, err := parseThreshold(v)
		if err != nil {
			return cfg, invalidField(origin(EnvSuggestThreshold), "resolver.suggest_threshold", err.Error())
		}
		cfg.Resolver.SuggestThreshold = f
	}
	if v, ok := get(EnvLogLevel); ok {
		if err := checkLevel(v); err != nil {
			return cfg, invalidField(origin(EnvLogLevel), "logging.level", err.Error())
		}
		cfg.Logging.Level = v
	}
	if v, ok := get(EnvLogFormat); ok {
		if err := checkFormat(v); err != nil {
			return cfg, invalidField(origin(EnvLogFormat), "logging.format", err.Error())
		}
		cfg.Logging.Format = v
	}

	return cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err == nil {
		return vals, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	return nil, &domain.OpError{
		Op:   "config.load_dotenv",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, errors.New("expected a boolean")
}
