package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Version   string   `json:"version" mapstructure:"version"`
	SchemaDir string   `json:"schema_dir" mapstructure:"schema_dir"` // folder containing .sql schema files
	OutDir    string   `json:"out_dir" mapstructure:"out_dir"`       // where rendered table models go
	Database  Database `json:"database" mapstructure:"database"`
	Generate  Generate `json:"generate" mapstructure:"generate"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Generate holds the row-generation surface: default counts, the random
// seed, the null policy and per-table / per-column overrides.
type Generate struct {
	Count     int                       `json:"count" mapstructure:"count"`
	Seed      int64                     `json:"seed,omitempty" mapstructure:"seed"`
	NullRate  float64                   `json:"null_rate,omitempty" mapstructure:"null_rate"`
	Tables    map[string]int            `json:"tables,omitempty" mapstructure:"tables"`
	Relations RelationSettings          `json:"relations" mapstructure:"relations"`
	Columns   map[string]ColumnOverride `json:"columns,omitempty" mapstructure:"columns"` // keyed "table.column"
}

type RelationSettings struct {
	MinRelated int `json:"min_related" mapstructure:"min_related"`
	MaxRelated int `json:"max_related" mapstructure:"max_related"`
	PoolSize   int `json:"pool_size" mapstructure:"pool_size"`
}

// ColumnOverride lets a config pin down one column's generation contract
// without touching the schema.
type ColumnOverride struct {
	Kind      string   `json:"kind,omitempty" mapstructure:"kind"`
	Min       *int64   `json:"min,omitempty" mapstructure:"min"`
	Max       *int64   `json:"max,omitempty" mapstructure:"max"`
	MaxLength *int     `json:"max_length,omitempty" mapstructure:"max_length"`
	NullRate  *float64 `json:"null_rate,omitempty" mapstructure:"null_rate"`
	Choices   []string `json:"choices,omitempty" mapstructure:"choices"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.SchemaDir == "" {
		cfg.SchemaDir = "db/schema"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "models"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Generate.Count == 0 {
		cfg.Generate.Count = 10
	}
	if cfg.Generate.Relations.MinRelated == 0 && cfg.Generate.Relations.MaxRelated == 0 {
		cfg.Generate.Relations = RelationSettings{MinRelated: 1, MaxRelated: 5, PoolSize: 10}
	}
	if cfg.Generate.Relations.PoolSize == 0 {
		cfg.Generate.Relations.PoolSize = cfg.Generate.Relations.MaxRelated * 2
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if c.SchemaDir == "" {
		return fmt.Errorf("schema_dir cannot be empty")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir cannot be empty")
	}
	if c.Generate.Count < 0 {
		return fmt.Errorf("generate.count cannot be negative")
	}
	if c.Generate.NullRate < 0 || c.Generate.NullRate > 1 {
		return fmt.Errorf("generate.null_rate must be in [0,1], got %g", c.Generate.NullRate)
	}

	return nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.SchemaDir, c.OutDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetSchemaFiles returns all .sql files in the schema directory.
func (c *Config) GetSchemaFiles() ([]string, error) {
	entries, err := os.ReadDir(c.SchemaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory %s: %w", c.SchemaDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(c.SchemaDir, entry.Name()))
		}
	}
	return files, nil
}

// CountFor returns the row count for a table, falling back to the
// default count.
func (c *Config) CountFor(table string) int {
	if n, ok := c.Generate.Tables[table]; ok {
		return n
	}
	return c.Generate.Count
}
