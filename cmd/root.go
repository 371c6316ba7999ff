package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.4.1"
)

var rootCmd = &cobra.Command{
	Use:   "mockforge",
	Short: "Generate relation-aware synthetic test data from SQL schemas",
	Long: `
mockforge reads your CREATE TABLE statements, maps every column to a
typed random-value generator and wires foreign keys and junction tables
so generated rows stay referentially consistent across tables.

Commands:
- generate: render one Go table model per parsed table
- rows:     preview generated rows without touching a database
- seed:     insert generated rows into your database

Database Support:
- PostgreSQL
- MySQL
- SQLite`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("mockforge CLI version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mockforge.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("mockforge.config")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()
}
