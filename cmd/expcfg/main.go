package main

import (
	"fmt"
	"os"

	"github.com/matforge/expcfg"
	"github.com/spf13/cobra"
)

var (
	flagSchema string
	flagFormat string
)

var rootCmd = &cobra.Command{
	Use:   "expcfg",
	Short: "Validate experiment configuration files against a declarative schema",
	Long: "expcfg checks experiment configuration documents against a type schema\n" +
		"before a run is allowed to start: section structure, field types,\n" +
		"list and union coercions, and per-model parameter schemas.",
}

func main() {
	rootCmd.AddCommand(validateCmd, exportCmd, gridCmd)

	rootCmd.PersistentFlags().StringVarP(&flagSchema, "schema", "s", "", "schema document (required by validate/export)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: text, json or yaml")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}

// loadSchema reads and parses the --schema document. A malformed schema is
// fatal before any instance is looked at.
func loadSchema() (*expcfg.Schema, error) {
	if flagSchema == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	data, err := os.ReadFile(flagSchema)
	if err != nil {
		return nil, err
	}
	return expcfg.ParseSchema(string(data))
}
