package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/cli"
)

var flagJSON bool

var setCmd = &cobra.Command{
	Use:   "set <id> <value>",
	Short: "Set a category to an absolute value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, alloc.Absolute, args[0], args[1])
	},
}

var pctCmd = &cobra.Command{
	Use:   "pct <id> <percent>",
	Short: "Allocate a percentage to a category and its parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, alloc.Percentage, args[0], args[1])
	},
}

func init() {
	for _, c := range []*cobra.Command{setCmd, pctCmd} {
		c.Flags().BoolVar(&flagJSON, "json", false, "Print the resulting tree as JSON")
		rootCmd.AddCommand(c)
	}
}

func runEdit(cmd *cobra.Command, kind alloc.Kind, id, rawAmount string) error {
	amount, ok := alloc.ParseAmount(rawAmount)
	if !ok {
		return fmt.Errorf("invalid amount %q: want a non-zero number", rawAmount)
	}

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

	edit := alloc.Edit{Kind: kind, TargetID: id, Amount: amount}
	_, _, found := alloc.Find(tree, id)
	if !found {
		logger.Warn("unknown category", zap.String("id", id))
		fmt.Fprintf(cmd.ErrOrStderr(), "  No category with id %q; table unchanged.\n", id)
	} else {
		tree = alloc.Apply(tree, edit)
		logger.Info("allocation applied",
			zap.String("id", id),
			zap.String("kind", kind.String()),
			zap.Float64("amount", amount))
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			// encoding/json rejects the Inf/NaN variance of a zero-valued target
			return fmt.Errorf("encoding tree: %w", err)
		}
		return nil
	}

	if found && !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", cli.FormatEdit(edit))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTree(tree))
	return nil
}
