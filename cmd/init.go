package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultConfig = `{
  "version": "1",
  "schema_dir": "db/schema",
  "out_dir": "models",
  "database": {
    "provider": "postgresql",
    "url_env": "DATABASE_URL"
  },
  "generate": {
    "count": 10,
    "null_rate": 0,
    "relations": {
      "min_related": 1,
      "max_related": 5,
      "pool_size": 10
    }
  }
}
`

const exampleSchema = `CREATE TABLE customer (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    email VARCHAR(100) NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE product (
    id SERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    price DECIMAL(10, 2) NOT NULL,
    category VARCHAR(20)
);

CREATE TABLE "order" (
    id SERIAL PRIMARY KEY,
    customer_id INTEGER NOT NULL REFERENCES customer(id),
    ordered_at TIMESTAMP NOT NULL
);

CREATE TABLE order_product (
    order_id INTEGER NOT NULL REFERENCES "order"(id),
    product_id INTEGER NOT NULL REFERENCES product(id)
);
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a mockforge project",
	Long:  `Create mockforge.config.json and a schema directory with an example schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat("mockforge.config.json"); err == nil {
			return fmt.Errorf("mockforge.config.json already exists")
		}

		if err := os.WriteFile("mockforge.config.json", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		schemaDir := filepath.Join("db", "schema")
		if err := os.MkdirAll(schemaDir, 0755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}

		schemaPath := filepath.Join(schemaDir, "schema.sql")
		if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
			if err := os.WriteFile(schemaPath, []byte(exampleSchema), 0644); err != nil {
				return fmt.Errorf("failed to write example schema: %w", err)
			}
		}

		color.Green("✅ Project initialized")
		color.Cyan("📄 Config: mockforge.config.json")
		color.Cyan("📁 Schema: %s", schemaPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
