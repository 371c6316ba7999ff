package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/mockforge/internal/config"
	"github.com/Lumos-Labs-HQ/mockforge/internal/forge"
	"github.com/Lumos-Labs-HQ/mockforge/internal/render"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render Go table models from the SQL schema",
	Long: `Parse the schema directory, map every column to a typed generator and
write one Go source model per table into out_dir. Junction tables are
folded into many-to-many relations on their owning table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}

		files, err := cfg.GetSchemaFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no .sql files found in %s (run 'mockforge init' to scaffold one)", cfg.SchemaDir)
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

		renderer, err := render.New(cfg.OutDir)
		if err != nil {
			return err
		}

		color.Cyan("🔨 Rendering table models...")
		rendered := 0
		for _, table := range f.Tables() {
			if f.IsJunction(table.Name) {
				color.Yellow("  ↪ %s: junction table, folded into a many-to-many relation", table.Name)
				continue
			}
			m, err := f.Registry().Get(table.Name)
			if err != nil {
				return err
			}
			path, err := renderer.RenderTable(m.Describe())
			if err != nil {
				return err
			}
			color.Green("  ✅ %s -> %s", table.Name, path)
			rendered++
		}

		color.Green("\n✅ Rendered %d table models", rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
