package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML overrides a subset of fields; the rest come from defaults.
const validConfigYAML = `
pipeline:
  input_dir: "./archives"
  output_dir: "./site"
  workers: 2
  similarity_threshold: 0.9
classify:
  categories:
    - name: "economics"
      aliases: ["finance and economics"]
      terms: ["inflation", "bank", "trade"]
logging:
  level: "debug"
`

func TestLoad_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Pipeline.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.Pipeline.Workers)
	}

	if cfg.Pipeline.SimilarityThreshold != 0.9 {
		t.Errorf("Expected threshold 0.9, got %v", cfg.Pipeline.SimilarityThreshold)
	}

	// Unset fields fall back to defaults.
	if cfg.Pipeline.RelatedLinksCount != 4 {
		t.Errorf("Expected default related_links_count 4, got %d", cfg.Pipeline.RelatedLinksCount)
	}

	if len(cfg.Classify.Categories) != 1 {
		t.Errorf("Expected 1 category, got %d", len(cfg.Classify.Categories))
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "pipeline: [not: a: mapping")

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}

	if len(cfg.Classify.Categories) == 0 {
		t.Error("Default config has no categories")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{
			name:     "Threshold above one",
			mutate:   func(c *Config) { c.Pipeline.SimilarityThreshold = 1.5 },
			expected: ErrInvalidSimilarityThreshold,
		},
		{
			name:     "Threshold negative",
			mutate:   func(c *Config) { c.Pipeline.SimilarityThreshold = -0.1 },
			expected: ErrInvalidSimilarityThreshold,
		},
		{
			name:     "Zero related links",
			mutate:   func(c *Config) { c.Pipeline.RelatedLinksCount = 0 },
			expected: ErrInvalidRelatedLinksCount,
		},
		{
			name:     "Zero workers",
			mutate:   func(c *Config) { c.Pipeline.Workers = 0 },
			expected: ErrInvalidWorkers,
		},
		{
			name: "Category without terms",
			mutate: func(c *Config) {
				c.Classify.Categories = []CategoryConfig{{Name: "empty"}}
			},
			expected: ErrCategoryMissingTerms,
		},
		{
			name: "Duplicate category",
			mutate: func(c *Config) {
				c.Classify.Categories = []CategoryConfig{
					{Name: "world", Terms: []string{"a"}},
					{Name: "world", Terms: []string{"b"}},
				}
			},
			expected: ErrDuplicateCategory,
		},
		{
			name:     "Bad log level",
			mutate:   func(c *Config) { c.Logging.Level = "verbose" },
			expected: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() = %v, want %v", err, tt.expected)
			}
		})
	}
}
