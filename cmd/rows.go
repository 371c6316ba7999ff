package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/mockforge/internal/config"
	"github.com/Lumos-Labs-HQ/mockforge/internal/forge"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	rowsCount  int
	rowsSeed   int64
	rowsFormat string
	rowsOut    string
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Preview generated rows without a database",
	Long: `Generate rows for every table in dependency order and print them.
Useful for inspecting what 'seed' would insert.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if rowsCount > 0 {
			cfg.Generate.Count = rowsCount
		}
		if rowsSeed != 0 {
			cfg.Generate.Seed = rowsSeed
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

		result, err := f.Generate()
		if err != nil {
			return err
		}

		switch rowsFormat {
		case "json":
			return writeEncoded(result, rowsOut, func(v any) ([]byte, error) {
				return json.MarshalIndent(v, "", "  ")
			})
		case "yaml":
			return writeEncoded(result, rowsOut, yaml.Marshal)
		case "table":
			printResult(result)
			return nil
		default:
			return fmt.Errorf("unknown format %q (supported: table, json, yaml)", rowsFormat)
		}
	},
}

// encodedResult is the serialized shape for json/yaml output.
type encodedResult struct {
	Tables    []encodedTable `json:"tables" yaml:"tables"`
	Junctions []encodedPair  `json:"junctions,omitempty" yaml:"junctions,omitempty"`
}

type encodedTable struct {
	Name    string           `json:"name" yaml:"name"`
	Columns []string         `json:"columns" yaml:"columns"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

type encodedPair struct {
	Table      string `json:"table" yaml:"table"`
	FromColumn string `json:"from_column" yaml:"from_column"`
	ToColumn   string `json:"to_column" yaml:"to_column"`
	FromKey    any    `json:"from_key" yaml:"from_key"`
	ToKey      any    `json:"to_key" yaml:"to_key"`
}

func writeEncoded(result *forge.Result, out string, marshal func(any) ([]byte, error)) error {
	enc := encodedResult{}
	for _, t := range result.Tables {
		et := encodedTable{Name: t.Name, Columns: t.Columns}
		for _, row := range t.Rows {
			et.Rows = append(et.Rows, row)
		}
		enc.Tables = append(enc.Tables, et)
	}
	for _, jr := range result.Junctions {
		enc.Junctions = append(enc.Junctions, encodedPair{
			Table:      jr.Table,
			FromColumn: jr.FromColumn,
			ToColumn:   jr.ToColumn,
			FromKey:    jr.FromKey,
			ToKey:      jr.ToKey,
		})
	}

	data, err := marshal(enc)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	color.Green("✅ Wrote %s", out)
	return nil
}

func printResult(result *forge.Result) {
	for _, table := range result.Tables {
		color.Cyan("📋 %s (%d rows)", table.Name, len(table.Rows))
		fmt.Println("  " + strings.Join(table.Columns, " | "))
		for _, row := range table.Rows {
			values := make([]string, len(table.Columns))
			for i, col := range table.Columns {
				if row[col] == nil {
					values[i] = "NULL"
				} else {
					values[i] = fmt.Sprintf("%v", row[col])
				}
			}
			fmt.Println("  " + strings.Join(values, " | "))
		}
		fmt.Println()
	}

	if len(result.Junctions) > 0 {
		color.Cyan("🔗 junction rows")
		for _, jr := range result.Junctions {
			fmt.Printf("  %s: %s=%v %s=%v\n", jr.Table, jr.FromColumn, jr.FromKey, jr.ToColumn, jr.ToKey)
		}
	}
}

func init() {
	rootCmd.AddCommand(rowsCmd)
	rowsCmd.Flags().IntVar(&rowsCount, "count", 0, "Rows per table (overrides config)")
	rowsCmd.Flags().Int64Var(&rowsSeed, "seed", 0, "Random seed for reproducible output")
	rowsCmd.Flags().StringVar(&rowsFormat, "format", "table", "Output format: table, json or yaml")
	rowsCmd.Flags().StringVarP(&rowsOut, "output", "o", "", "Write output to file instead of stdout")
}
