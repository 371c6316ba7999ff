package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/config"
	"github.com/Lumos-Labs-HQ/mockforge/internal/forge"
	"github.com/Lumos-Labs-HQ/mockforge/internal/inserter"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

var (
	seedCount int
	seedSeed  int64
	seedBatch int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate rows and insert them into the database",
	Long: `Generate rows for every table in dependency order and insert them
into the configured database inside one transaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if seedCount > 0 {
			cfg.Generate.Count = seedCount
		}
		if seedSeed != 0 {
			cfg.Generate.Seed = seedSeed
		}

		f, err := forge.New(cfg)
		if err != nil {
			return err
		}
		if err := f.LoadSchema(); err != nil {
			return err
		}
		if err := f.Build(); err != nil {
			return err
		}

		color.Cyan("🌱 Generating rows...")
		result, err := f.Generate()
		if err != nil {
			return err
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		ins := inserter.New(db, cfg.Database.Provider)
		if seedBatch > 0 {
			ins.SetBatchSize(seedBatch)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := ins.InsertResult(ctx, result); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		total := 0
		for _, t := range result.Tables {
			color.Green("  ✅ %s: %d rows", t.Name, len(t.Rows))
			total += len(t.Rows)
		}
		if len(result.Junctions) > 0 {
			color.Green("  ✅ junction rows: %d", len(result.Junctions))
			total += len(result.Junctions)
		}
		color.Green("\n📊 Seeded %d rows across %d tables", total, len(result.Tables))
		return nil
	},
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	url, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	var driver string
	switch cfg.Database.Provider {
	case "postgresql", "postgres":
		driver = "pgx"
	case "mysql":
		driver = "mysql"
	case "sqlite", "sqlite3":
		driver = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", cfg.Database.Provider)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedCount, "count", 0, "Rows per table (overrides config)")
	seedCmd.Flags().Int64Var(&seedSeed, "seed", 0, "Random seed for reproducible data")
	seedCmd.Flags().IntVar(&seedBatch, "batch", 0, "Rows per INSERT statement")
}
