package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// Dir is the per-repository configuration directory
	Dir = ".repolens"
	// EnvPrefix prefixes environment overrides, e.g. REPOLENS_ANALYSIS_MAXDEPTH
	EnvPrefix = "REPOLENS"
	// CurrentVersion is the config schema version
	CurrentVersion = 1
)

// Config represents the complete repolens configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Analysis  AnalysisConfig  `json:"analysis" mapstructure:"analysis"`
	Knowledge KnowledgeConfig `json:"knowledge" mapstructure:"knowledge"`
	Scip      ScipConfig      `json:"scip" mapstructure:"scip"`
	Export    ExportConfig    `json:"export" mapstructure:"export"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// AnalysisConfig contains impact analysis settings
type AnalysisConfig struct {
	MaxDepth              int     `json:"maxDepth" mapstructure:"maxDepth"`
	CriticalPathLimit     int     `json:"criticalPathLimit" mapstructure:"criticalPathLimit"`
	CriticalPathMinWeight float64 `json:"criticalPathMinWeight" mapstructure:"criticalPathMinWeight"`
}

// KnowledgeConfig contains knowledge graph settings
type KnowledgeConfig struct {
	VocabularyFile string `json:"vocabularyFile" mapstructure:"vocabularyFile"`
	CentralLimit   int    `json:"centralLimit" mapstructure:"centralLimit"`
	RelatedLimit   int    `json:"relatedLimit" mapstructure:"relatedLimit"`
}

// ScipConfig contains the optional SCIP edge source
type ScipConfig struct {
	IndexPath string `json:"indexPath" mapstructure:"indexPath"`
}

// ExportConfig contains SQLite export settings
type ExportConfig struct {
	Database string `json:"database" mapstructure:"database"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Analysis: AnalysisConfig{
			MaxDepth:              10,
			CriticalPathLimit:     3,
			CriticalPathMinWeight: 0.7,
		},
		Knowledge: KnowledgeConfig{
			VocabularyFile: "",
			CentralLimit:   10,
			RelatedLimit:   10,
		},
		Export: ExportConfig{
			Database: filepath.Join(Dir, "graph.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("analysis.maxDepth", d.Analysis.MaxDepth)
	v.SetDefault("analysis.criticalPathLimit", d.Analysis.CriticalPathLimit)
	v.SetDefault("analysis.criticalPathMinWeight", d.Analysis.CriticalPathMinWeight)
	v.SetDefault("knowledge.vocabularyFile", d.Knowledge.VocabularyFile)
	v.SetDefault("knowledge.centralLimit", d.Knowledge.CentralLimit)
	v.SetDefault("knowledge.relatedLimit", d.Knowledge.RelatedLimit)
	v.SetDefault("scip.indexPath", d.Scip.IndexPath)
	v.SetDefault("export.database", d.Export.Database)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// LoadConfig loads configuration from .repolens/config.json under root.
// A missing file yields the defaults. REPOLENS_* environment variables
// override both.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, Dir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .repolens/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Analysis.MaxDepth <= 0 {
		return &ConfigError{Field: "analysis.maxDepth", Message: "must be positive"}
	}
	if c.Analysis.CriticalPathLimit <= 0 {
		return &ConfigError{Field: "analysis.criticalPathLimit", Message: "must be positive"}
	}
	if w := c.Analysis.CriticalPathMinWeight; w < 0 || w > 1 {
		return &ConfigError{Field: "analysis.criticalPathMinWeight", Message: "must be between 0 and 1"}
	}
	if c.Knowledge.CentralLimit <= 0 {
		return &ConfigError{Field: "knowledge.centralLimit", Message: "must be positive"}
	}
	if c.Knowledge.RelatedLimit <= 0 {
		return &ConfigError{Field: "knowledge.relatedLimit", Message: "must be positive"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
