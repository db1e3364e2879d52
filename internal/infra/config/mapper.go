package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/distmap/internal/domain"
)

// MapConfig applies the values set in y on top of base.
func MapConfig(path string, base domain.Config, y YAMLConfig) (domain.Config, error) {
	cfg := base

	if y.Service.BaseURL != "" {
		cfg.Service.BaseURL = y.Service.BaseURL
	}
	if y.Service.Timeout != "" {
		d, err := parseTimeout(y.Service.Timeout)
		if err != nil {
			return base, invalidField(path, "service.timeout", err.Error())
		}
		cfg.Service.Timeout = d
	}

	if y.Map.Color != "" {
		cfg.Map.Color = y.Map.Color
	}

	if y.Paths.DataDir != "" {
		cfg.Paths.DataDir = y.Paths.DataDir
	}
	if y.Paths.MapFile != "" {
		cfg.Paths.MapFile = y.Paths.MapFile
	}
	if y.Paths.CodesFile != "" {
		cfg.Paths.CodesFile = y.Paths.CodesFile
	}
	if y.Paths.MappingFile != "" {
		cfg.Paths.MappingFile = y.Paths.MappingFile
	}
	if y.Paths.OutputDir != "" {
		cfg.Paths.OutputDir = y.Paths.OutputDir
	}

	if y.Resolver.FoldAccents != nil {
		cfg.Resolver.FoldAccents = *y.Resolver.FoldAccents
	}
	if y.Resolver.SuggestThreshold != nil {
		if err := checkThreshold(*y.Resolver.SuggestThreshold); err != nil {
			return base, invalidField(path, "resolver.suggest_threshold", err.Error())
		}
		cfg.Resolver.SuggestThreshold = *y.Resolver.SuggestThreshold
	}

	if y.Logging.Level != "" {
		if err := checkLevel(y.Logging.Level); err != nil {
			return base, invalidField(path, "logging.level", err.Error())
		}
		cfg.Logging.Level = y.Logging.Level
	}
	if y.Logging.Format != "" {
		if err := checkFormat(y.Logging.Format); err != nil {
			return base, invalidField(path, "logging.format", err.Error())
		}
		cfg.Logging.Format = y.Logging.Format
	}

	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative")
	}
	return d, nil
}

func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, checkThreshold(v)
}

func checkThreshold(v float64) error {
	if v < 0 {
		return fmt.Errorf("threshold must not be negative")
	}
	return nil
}

func checkLevel(s string) error {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("unsupported level %q (expected debug|info|warn|error)", s)
}

func checkFormat(s string) error {
	switch strings.ToLower(s) {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected text|json)", s)
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
