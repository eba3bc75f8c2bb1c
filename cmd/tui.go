package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/config"
	"github.com/theirongolddev/salestable/internal/source"
	"github.com/theirongolddev/salestable/internal/tui"
	"github.com/theirongolddev/salestable/internal/tui/theme"
)

var flagWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive sales table",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Reload when the data file changes")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault(cmd)
	theme.SetActive(cfg.Appearance.Theme)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := dataFile(cfg)
	tree, err := loadTree(cmd, path, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events <-chan source.Event
	if (flagWatch || cfg.General.Watch) && path != "" {
		events, err = source.Watch(ctx, path)
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		logger.Info("watching data file", zap.String("file", path))
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tree, tui.Options{
		DataFile: path,
		Watch:    events,
		Logger:   logger,
		FirstRun: !config.Exists(),

		DataPinned: dataPinned(),
		StartWatch: func(path string) (<-chan source.Event, error) {
			return source.Watch(ctx, path)
		},
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
