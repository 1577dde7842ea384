// Package cmd provides the command-line interface of modeline.
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/modeline/config"
)

var cfg = config.Config{Refresh: config.DefaultRefresh}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modeline",
	Short: "Modeline computes display timings with the VESA CVT and GTF formulas.",
	Long: `Modeline computes display timings with the VESA CVT and GTF ` +
		`formulas, keeps a catalog of modes and serves both over HTTP. ` +
		`Settings are read from the environment and from a .env file.`,
}

func init() {
	rootCmd.PersistentFlags().String("db", "",
		"SQLite file of the mode catalog, overrides MODELINE_DB.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	c, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	cfg = c

	err = rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

func dbPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("db")
	if path != "" {
		return path
	}

	return cfg.DBPath
}
