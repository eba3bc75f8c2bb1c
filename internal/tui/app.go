// Package tui provides the interactive Bubble Tea sales table.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/cli"
	"github.com/theirongolddev/salestable/internal/config"
	"github.com/theirongolddev/salestable/internal/model"
	"github.com/theirongolddev/salestable/internal/source"
	"github.com/theirongolddev/salestable/internal/tui/components"
	"github.com/theirongolddev/salestable/internal/tui/theme"
)

// TreeLoadedMsg carries the result of a manual reload of the data file.
type TreeLoadedMsg struct {
	Tree model.Tree
	Err  error
}

// watchMsg carries a reload triggered by a change to the data file.
type watchMsg source.Event

// Options configures a new App.
type Options struct {
	DataFile string
	Watch    <-chan source.Event
	Logger   *zap.Logger
	FirstRun bool

	// DataPinned keeps DataFile even when setup picks another file, as when
	// --data or the env var chose it.
	DataPinned bool
	// StartWatch begins watching a data file chosen during setup.
	StartWatch func(path string) (<-chan source.Event, error)
}

// App is the root Bubble Tea model. It owns the current tree snapshot and
// replaces it on every allocation.
type App struct {
	tree     model.Tree
	rows     []cli.Row
	dataFile   string
	dataPinned bool
	watch      <-chan source.Event
	startWatch func(path string) (<-chan source.Event, error)
	logger     *zap.Logger

	// UI state
	width    int
	height   int
	cursor   int
	offset   int
	showHelp bool

	// Amount input
	mode  inputMode
	input textinput.Model

	// Last action, shown in the status bar
	status     string
	statusWarn bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 50
	maxContentWidth  = 100

	// title (1) + status bar (1)
	chromeHeight = 2
	// card border (2) + card title (1) + column header (1)
	tableOverhead = 4
	minVisibleRows = 3
)

// NewApp creates a new TUI app model for tree.
func NewApp(tree model.Tree, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := App{
		tree:       tree,
		rows:       cli.Rows(tree),
		dataFile:   opts.DataFile,
		dataPinned: opts.DataPinned,
		watch:      opts.Watch,
		startWatch: opts.StartWatch,
		logger:     logger,
		needSetup:  opts.FirstRun,
	}
	if a.needSetup {
		vals := newSetupValues(loadConfigOrDefault())
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// loadConfigOrDefault loads config, returning defaults on error.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// Tree returns the current tree snapshot.
func (a App) Tree() model.Tree {
	return a.tree
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.watch != nil {
		cmds = append(cmds, waitForWatch(a.watch))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.clampCursor()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.mode != inputNone {
			return a.updateInput(msg)
		}
		return a.updateTable(msg)

	case TreeLoadedMsg:
		a.applyReload(msg.Tree, msg.Err, "reloaded")
		return a, nil

	case watchMsg:
		a.applyReload(msg.Tree, msg.Err, "data file changed, reloaded")
		return a, waitForWatch(a.watch)
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.mode != inputNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.rows) - 1
	case "p", "%":
		return a.startInput(inputPercentage)
	case "v", "=":
		return a.startInput(inputAbsolute)
	case "r":
		if a.dataFile == "" {
			a.setStatus("sample data has no file to reload", true)
			return a, nil
		}
		return a, reloadCmd(a.dataFile)
	}
	a.clampCursor()
	return a, nil
}

// allocate applies one edit to the selected row and records the outcome.
func (a *App) allocate(kind alloc.Kind, amount float64) {
	if len(a.rows) == 0 {
		return
	}
	edit := alloc.Edit{Kind: kind, TargetID: a.rows[a.cursor].ID, Amount: amount}

	a.tree = alloc.Apply(a.tree, edit)
	a.rows = cli.Rows(a.tree)
	a.clampCursor()

	fields := []zap.Field{
		zap.String("id", edit.TargetID),
		zap.String("kind", edit.Kind.String()),
		zap.Float64("amount", edit.Amount),
	}
	if n, _, ok := alloc.Find(a.tree, edit.TargetID); ok {
		fields = append(fields, zap.Float64("value", n.Value))
		if n.Variance != nil {
			fields = append(fields, zap.Float64("variance", *n.Variance))
		}
	}
	a.logger.Info("allocation applied", fields...)

	a.setStatus(cli.FormatEdit(edit), false)
}

func (a *App) applyReload(tree model.Tree, err error, okMsg string) {
	if err != nil {
		a.logger.Warn("reload failed", zap.String("file", a.dataFile), zap.Error(err))
		a.setStatus(fmt.Sprintf("reload failed: %v", err), true)
		return
	}
	a.tree = tree
	a.rows = cli.Rows(tree)
	a.clampCursor()
	a.logger.Info("tree reloaded", zap.String("file", a.dataFile), zap.Int("nodes", len(a.rows)))
	a.setStatus(okMsg, false)
}

func (a *App) setStatus(msg string, warn bool) {
	a.status = msg
	a.statusWarn = warn
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	visible := a.visibleRows()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+visible {
		a.offset = a.cursor - visible + 1
	}
	if a.offset < 0 {
		a.offset = 0
	}
}

func (a App) visibleRows() int {
	h := a.height - chromeHeight - tableOverhead
	if a.mode != inputNone {
		h -= inputCardHeight
	}
	if h < minVisibleRows {
		h = minVisibleRows
	}
	return h
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n  salestable needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	sourceStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	src := "sample data"
	if a.dataFile != "" {
		src = a.dataFile
	}
	if a.watch != nil {
		src += " (watching)"
	}
	title := titleStyle.Render(" Sales Table") + sourceStyle.Render("  "+src)

	sections := []string{title, a.renderTable(cw)}
	if a.mode != inputNone {
		sections = append(sections, a.renderInput(cw))
	}

	body := strings.Join(sections, "\n")
	bodyH := a.height - 1
	if bodyH < 1 {
		bodyH = 1
	}
	body = padHeight(truncateHeight(body, bodyH), bodyH)

	hints := "[j/k]move [p]alloc % [v]alloc value [r]eload [?]help [q]uit"
	if a.mode != inputNone {
		hints = "[enter]apply [esc]cancel"
	}
	status := components.RenderStatusBar(a.width, hints, a.status, a.statusWarn)

	return body + "\n" + status
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"j k ↑ ↓", "Move between rows"},
		{"g G", "First / last row"},
		{"p %", "Allocate % to the selected row"},
		{"v =", "Allocate a value to the selected row"},
		{"Enter", "Apply the amount"},
		{"Esc", "Cancel the amount"},
		{"r", "Reload the data file"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("A percentage also bumps the row's parent; subtotals are then recomputed."))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

// waitForWatch blocks on the next watcher event. A closed channel ends the
// subscription.
func waitForWatch(ch <-chan source.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return watchMsg(ev)
	}
}

func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		tree, err := source.Load(path)
		return TreeLoadedMsg{Tree: tree, Err: err}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
