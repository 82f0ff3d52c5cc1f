// Package config provides configuration management for the collector pipeline.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidSimilarityThreshold = errors.New("pipeline.similarity_threshold must be in (0,1]")
	ErrInvalidRelatedLinksCount   = errors.New("pipeline.related_links_count must be at least 1")
	ErrInvalidWorkers             = errors.New("pipeline.workers must be at least 1")
	ErrInvalidMinArticleRunes     = errors.New("pipeline.min_article_runes must be non-negative")
	ErrCategoryMissingName        = errors.New("category name is required")
	ErrCategoryMissingTerms       = errors.New("category requires at least one indicator term")
	ErrDuplicateCategory          = errors.New("category names must be unique")
	ErrInvalidLogLevel            = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete collector configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Classify ClassifyConfig `yaml:"classify"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig contains stage tuning and the run directories.
type PipelineConfig struct {
	InputDir            string  `yaml:"input_dir"`
	OutputDir           string  `yaml:"output_dir"`
	Workers             int     `yaml:"workers"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	RelatedLinksCount   int     `yaml:"related_links_count"`
	MinArticleRunes     int     `yaml:"min_article_runes"`
}

// CategoryConfig defines one classification category: its indicator terms
// and the section-hint aliases that map straight to it.
type CategoryConfig struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	Terms   []string `yaml:"terms"`
}

// ClassifyConfig contains the closed category set, in priority order.
type ClassifyConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// RenderConfig defines renderer behavior.
type RenderConfig struct {
	// TemplateDir optionally overrides the embedded template set.
	TemplateDir string `yaml:"template_dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration the pipeline runs with when no config
// file is provided.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Workers:             4,
			SimilarityThreshold: 0.85,
			RelatedLinksCount:   4,
			MinArticleRunes:     400,
		},
		Classify: ClassifyConfig{
			Categories: defaultCategories(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file, fills unset fields with
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults restores defaults for fields an explicit config zeroed out.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = def.Pipeline.Workers
	}

	if c.Pipeline.SimilarityThreshold == 0 {
		c.Pipeline.SimilarityThreshold = def.Pipeline.SimilarityThreshold
	}

	if c.Pipeline.RelatedLinksCount == 0 {
		c.Pipeline.RelatedLinksCount = def.Pipeline.RelatedLinksCount
	}

	if c.Pipeline.MinArticleRunes == 0 {
		c.Pipeline.MinArticleRunes = def.Pipeline.MinArticleRunes
	}

	if len(c.Classify.Categories) == 0 {
		c.Classify.Categories = def.Classify.Categories
	}

	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 1 {
		return ErrInvalidSimilarityThreshold
	}

	if c.Pipeline.RelatedLinksCount < 1 {
		return ErrInvalidRelatedLinksCount
	}

	if c.Pipeline.Workers < 1 {
		return ErrInvalidWorkers
	}

	if c.Pipeline.MinArticleRunes < 0 {
		return ErrInvalidMinArticleRunes
	}

	seen := make(map[string]bool, len(c.Classify.Categories))

	for i, cat := range c.Classify.Categories {
		if cat.Name == "" {
			return fmt.Errorf("%w: categories[%d]", ErrCategoryMissingName, i)
		}

		if len(cat.Terms) == 0 {
			return fmt.Errorf("%w: categories[%d] (%s)", ErrCategoryMissingTerms, i, cat.Name)
		}

		if seen[cat.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, cat.Name)
		}

		seen[cat.Name] = true
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, Threshold: %.2f, Categories: %d}",
		c.Pipeline.Workers,
		c.Pipeline.SimilarityThreshold,
		len(c.Classify.Categories),
	)
}
