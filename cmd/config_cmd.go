// Package cmd implements the salestable CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salestable/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	if cfg.General.DataFile != "" {
		fmt.Fprintf(out, "    Data file: %s\n", cfg.General.DataFile)
	} else {
		fmt.Fprintln(out, "    Data file: not set (sample data)")
	}
	if env := os.Getenv(config.DataFileEnv); env != "" {
		fmt.Fprintf(out, "    %s:  %s (overrides data file)\n", config.DataFileEnv, env)
	}
	fmt.Fprintf(out, "    Watch:     %v\n", cfg.General.Watch)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	if cfg.Log.File != "" {
		fmt.Fprintf(out, "    File:  %s\n", cfg.Log.File)
	} else {
		fmt.Fprintln(out, "    File:  not set (logging off)")
	}
	fmt.Fprintf(out, "    Debug: %v\n", cfg.Log.Debug)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `salestable setup` to reconfigure.")
	return nil
}
