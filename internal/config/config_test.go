package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Analysis.MaxDepth != 10 {
		t.Errorf("MaxDepth = %d, want 10", cfg.Analysis.MaxDepth)
	}
	if cfg.Analysis.CriticalPathLimit != 3 {
		t.Errorf("CriticalPathLimit = %d, want 3", cfg.Analysis.CriticalPathLimit)
	}
	if cfg.Analysis.CriticalPathMinWeight != 0.7 {
		t.Errorf("CriticalPathMinWeight = %v, want 0.7", cfg.Analysis.CriticalPathMinWeight)
	}
	if cfg.Knowledge.CentralLimit != 10 || cfg.Knowledge.RelatedLimit != 10 {
		t.Errorf("knowledge limits = %+v", cfg.Knowledge)
	}
	if cfg.Export.Database != filepath.Join(".repolens", "graph.db") {
		t.Errorf("Export.Database = %q", cfg.Export.Database)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Analysis.MaxDepth != 10 || cfg.Knowledge.RelatedLimit != 10 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".repolens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	body := `{
  "version": 1,
  "analysis": {"maxDepth": 4},
  "knowledge": {"vocabularyFile": "VOCABULARY.toml"},
  "logging": {"level": "debug"}
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Analysis.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", cfg.Analysis.MaxDepth)
	}
	if cfg.Knowledge.VocabularyFile != "VOCABULARY.toml" {
		t.Errorf("VocabularyFile = %q", cfg.Knowledge.VocabularyFile)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Analysis.CriticalPathLimit != 3 || cfg.Logging.Format != "human" {
		t.Errorf("expected defaults for unset keys, got %+v", cfg)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("REPOLENS_ANALYSIS_MAXDEPTH", "6")
	t.Setenv("REPOLENS_LOGGING_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Analysis.MaxDepth != 6 {
		t.Errorf("MaxDepth = %d, want 6", cfg.Analysis.MaxDepth)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".repolens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(root); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.Analysis.MaxDepth = 7
	cfg.Export.Database = "out.db"
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Analysis.MaxDepth != 7 || loaded.Export.Database != "out.db" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"valid", func(c *Config) {}, ""},
		{"version", func(c *Config) { c.Version = 9 }, "version"},
		{"zero depth", func(c *Config) { c.Analysis.MaxDepth = 0 }, "analysis.maxDepth"},
		{"negative path limit", func(c *Config) { c.Analysis.CriticalPathLimit = -1 }, "analysis.criticalPathLimit"},
		{"weight above one", func(c *Config) { c.Analysis.CriticalPathMinWeight = 1.5 }, "analysis.criticalPathMinWeight"},
		{"weight below zero", func(c *Config) { c.Analysis.CriticalPathMinWeight = -0.1 }, "analysis.criticalPathMinWeight"},
		{"central limit", func(c *Config) { c.Knowledge.CentralLimit = 0 }, "knowledge.centralLimit"},
		{"related limit", func(c *Config) { c.Knowledge.RelatedLimit = 0 }, "knowledge.relatedLimit"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}
