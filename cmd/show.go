package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/salestable/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the sales table",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault(cmd)
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tree, err := loadTree(cmd, dataFile(cfg), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("SALES"))
	fmt.Fprint(out, cli.RenderTree(tree))
	return nil
}
