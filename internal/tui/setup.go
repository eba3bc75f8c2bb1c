package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/config"
	"github.com/theirongolddev/salestable/internal/source"
	"github.com/theirongolddev/salestable/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Theme    string
	DataFile string
	Watch    bool
}

func newSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		Theme:    cfg.Appearance.Theme,
		DataFile: cfg.General.DataFile,
		Watch:    cfg.General.Watch,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.Appearance.Theme = v.Theme
	cfg.General.DataFile = strings.TrimSpace(v.DataFile)
	cfg.General.Watch = v.Watch
}

// NewSetupForm builds the setup wizard. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to salestable").
				Description("A few settings, saved to "+config.Path()+".\nRun `salestable setup` anytime to change them."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Data file").
				Description("JSON, YAML or SQLite. Leave empty to start from sample data.").
				Placeholder("sales.yaml").
				Validate(validateDataFile).
				Value(&vals.DataFile),
			huh.NewConfirm().
				Title("Reload when the data file changes?").
				Value(&vals.Watch),
		),
	).WithShowHelp(false)
}

func validateDataFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := source.DetectFormat(s); err != nil {
		return errors.New("use a .json, .yaml, .yml, .db, .sqlite or .sqlite3 file")
	}
	return nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		return a.completeSetup()
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// completeSetup saves the answers and applies them to the running table: the
// chosen data file is loaded and, when asked for, watched.
func (a App) completeSetup() (App, tea.Cmd) {
	a.needSetup = false
	a.setupForm = nil

	cfg, err := a.saveSetupConfig()
	if err != nil {
		a.setStatus("saving config: "+err.Error(), true)
	} else {
		a.setStatus("settings saved", false)
	}

	if a.dataPinned {
		return a, nil
	}
	a.dataFile = config.DataFile(cfg)
	if a.dataFile == "" {
		return a, nil
	}

	cmds := []tea.Cmd{reloadCmd(a.dataFile)}
	if cfg.General.Watch && a.watch == nil {
		if a.startWatch == nil {
			a.setStatus("watching starts on the next launch", false)
		} else if events, err := a.startWatch(a.dataFile); err != nil {
			a.logger.Warn("watch failed", zap.String("file", a.dataFile), zap.Error(err))
			a.setStatus("watching "+a.dataFile+": "+err.Error(), true)
		} else {
			a.watch = events
			cmds = append(cmds, waitForWatch(events))
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) saveSetupConfig() (config.Config, error) {
	cfg := loadConfigOrDefault()
	a.setupVals.Apply(&cfg)
	theme.SetActive(cfg.Appearance.Theme)
	a.logger.Info("setup completed",
		zap.String("theme", cfg.Appearance.Theme),
		zap.String("data_file", cfg.General.DataFile),
		zap.Bool("watch", cfg.General.Watch))
	return cfg, config.Save(cfg)
}
