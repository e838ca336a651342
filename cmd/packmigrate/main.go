// Package main provides the packmigrate binary: a converter that migrates
// legacy predicate-based item models (1.14-1.21.3) in a resource pack to the
// 1.21.4+ dispatch-tree schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "1.1.0"
	appName = "packmigrate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert legacy resource-pack item models to the 1.21.4+ schema",
		Long: `Packmigrate reads a Minecraft resource pack (directory or zip),
converts item-model overrides under assets/*/models/item to the 1.21.4+
schema, and writes the result with models relocated to assets/*/items.

Conversion modes:
  cmd     merge overrides into one range_dispatch keyed by custom_model_data
  item    one standalone model document per override (item_model component)
  damage  merge damage-only overrides into one range_dispatch keyed by damage

Every file outside models/item passes through unchanged.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "cmd", "Conversion mode (cmd, item, damage)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "input", "Input pack: directory or zip file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory or zip file (default derived from input)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Run configuration file (YAML)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.keepTemp, "keep-temp", false, "Keep the staging directory of an extracted zip pack")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}
