package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/salestable/internal/alloc"
	"github.com/theirongolddev/salestable/internal/config"
	"github.com/theirongolddev/salestable/internal/model"
	"github.com/theirongolddev/salestable/internal/source"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(t *testing.T) App {
	t.Helper()
	app := NewApp(source.Sample(), Options{})
	return step(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func step(t *testing.T, app App, msg tea.Msg) App {
	t.Helper()
	m, _ := app.Update(msg)
	got, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return got
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, app App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		app = step(t, app, key(k))
	}
	return app
}

func findNode(t *testing.T, tree model.Tree, id string) model.Node {
	t.Helper()
	n, _, ok := alloc.Find(tree, id)
	if !ok {
		t.Fatalf("node %q not found", id)
	}
	return n
}

func TestCursorMovement(t *testing.T) {
	app := newTestApp(t)

	app = press(t, app, "j", "down")
	if app.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", app.cursor)
	}
	app = press(t, app, "k")
	if app.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.cursor)
	}

	app = press(t, app, "G")
	if app.cursor != 5 {
		t.Fatalf("cursor = %d, want last row 5", app.cursor)
	}
	app = press(t, app, "j")
	if app.cursor != 5 {
		t.Fatalf("cursor moved past last row: %d", app.cursor)
	}
	app = press(t, app, "g", "k")
	if app.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", app.cursor)
	}
}

func TestAllocateValue(t *testing.T) {
	app := newTestApp(t)
	app = press(t, app, "j", "v", "900", "enter")

	if app.mode != inputNone {
		t.Fatal("input still active after enter")
	}
	phones := findNode(t, app.Tree(), "phones")
	if phones.Value != 900 || phones.Variance == nil || *phones.Variance != 13 {
		t.Errorf("phones = %+v, want 900 / 13%%", phones)
	}
	if got := findNode(t, app.Tree(), "electronics").Value; got != 1600 {
		t.Errorf("electronics = %v, want 1600", got)
	}
	if app.status != "phones set to 900" || app.statusWarn {
		t.Errorf("status = %q (warn=%v)", app.status, app.statusWarn)
	}

	view := app.View()
	for _, want := range []string{"Electronics", "-- Phones", "1,600", "13%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAllocatePercentage(t *testing.T) {
	app := newTestApp(t)
	app = press(t, app, "j", "p", "10", "enter")

	phones := findNode(t, app.Tree(), "phones")
	if phones.Value != 880 || *phones.Variance != 10 {
		t.Errorf("phones = %+v, want 880 / 10%%", phones)
	}
	electronics := findNode(t, app.Tree(), "electronics")
	if electronics.Value != 1580 || electronics.Variance == nil || *electronics.Variance != 10 {
		t.Errorf("electronics = %+v, want 1580 / 10%%", electronics)
	}
	if app.status != "+10% on phones" {
		t.Errorf("status = %q", app.status)
	}
}

func TestInvalidAmountLeavesTree(t *testing.T) {
	for _, input := range []string{"", "abc", "0"} {
		app := newTestApp(t)
		before := app.Tree()

		app = press(t, app, "j", "v")
		if input != "" {
			app = press(t, app, input)
		}
		app = press(t, app, "enter")

		if got := findNode(t, app.Tree(), "phones"); got.Value != 800 || got.Variance != nil {
			t.Errorf("input %q changed phones to %+v", input, got)
		}
		if len(app.Tree()) != len(before) {
			t.Errorf("input %q changed the tree shape", input)
		}
		if !app.statusWarn {
			t.Errorf("input %q: no warning status", input)
		}
	}
}

func TestEscCancelsInput(t *testing.T) {
	app := newTestApp(t)
	app = press(t, app, "p", "50")
	if app.mode != inputPercentage {
		t.Fatalf("mode = %v, want percentage input", app.mode)
	}
	if !strings.Contains(app.View(), "Allocate %") {
		t.Error("view missing input card title")
	}

	app = press(t, app, "esc")
	if app.mode != inputNone {
		t.Fatal("esc did not close input")
	}
	if got := findNode(t, app.Tree(), "electronics"); got.Value != 1500 {
		t.Errorf("electronics = %v after cancel, want 1500", got.Value)
	}
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}

	// q is text while the amount input is open
	app = press(t, app, "v", "q")
	if app.mode != inputAbsolute || app.input.Value() != "q" {
		t.Errorf("mode=%v input=%q, want q typed into the amount", app.mode, app.input.Value())
	}
}

func TestWatchEventReplacesTree(t *testing.T) {
	ch := make(chan source.Event, 1)
	app := NewApp(source.Sample(), Options{DataFile: "sales.yaml", Watch: ch})
	app = step(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})

	next := model.Tree{{ID: "books", Label: "Books", Value: 42}}
	ch <- source.Event{Tree: next}
	msg := waitForWatch(ch)()

	m, cmd := app.Update(msg)
	app = m.(App)
	if len(app.rows) != 1 || app.rows[0].ID != "books" {
		t.Fatalf("rows = %+v, want books only", app.rows)
	}
	if cmd == nil {
		t.Error("watch subscription not renewed")
	}

	app = step(t, app, watchMsg{Err: errors.New("bad yaml")})
	if !app.statusWarn || len(app.rows) != 1 {
		t.Errorf("failed reload: status %q, rows %d", app.status, len(app.rows))
	}

	close(ch)
	if msg := waitForWatch(ch)(); msg != nil {
		t.Errorf("closed channel produced %T", msg)
	}
}

// writeTreeFile writes a one-node JSON data file and returns its path.
func writeTreeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.json")
	if err := os.WriteFile(path, []byte(`[{"id": "books", "label": "Books", "value": 42}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCmd executes cmd and flattens batches into their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, runCmd(c)...)
	}
	return msgs
}

func TestReloadKey(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(key("r"))
	app = press(t, app, "r")
	if cmd != nil || !app.statusWarn || app.status != "sample data has no file to reload" {
		t.Errorf("reload without file: cmd=%v status=%q", cmd != nil, app.status)
	}

	path := writeTreeFile(t)
	app = NewApp(source.Sample(), Options{DataFile: path})
	app = step(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})
	app = press(t, app, "j", "v", "900", "enter")

	m, cmd := app.Update(key("r"))
	app = m.(App)
	if cmd == nil {
		t.Fatal("r returned no command")
	}
	msg, ok := cmd().(TreeLoadedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("reload produced %#v", msg)
	}

	app = step(t, app, msg)
	if len(app.rows) != 1 || app.rows[0].ID != "books" {
		t.Errorf("rows = %+v, want edits discarded and books loaded", app.rows)
	}
	if app.status != "reloaded" || app.cursor != 0 {
		t.Errorf("status = %q, cursor = %d", app.status, app.cursor)
	}
}

func TestCompleteSetupLoadsChosenFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.DataFileEnv, "")
	path := writeTreeFile(t)

	events := make(chan source.Event, 1)
	events <- source.Event{Tree: model.Tree{{ID: "watched", Value: 1}}}
	var watched string
	app := NewApp(source.Sample(), Options{
		FirstRun: true,
		StartWatch: func(p string) (<-chan source.Event, error) {
			watched = p
			return events, nil
		},
	})
	app.setupVals.DataFile = path
	app.setupVals.Watch = true

	app, cmd := app.completeSetup()
	if app.needSetup || app.setupForm != nil {
		t.Error("setup still active")
	}
	if app.dataFile != path || watched != path {
		t.Errorf("dataFile = %q, watched = %q, want %q", app.dataFile, watched, path)
	}

	var loaded, watchSeen bool
	for _, msg := range runCmd(cmd) {
		switch msg := msg.(type) {
		case TreeLoadedMsg:
			loaded = msg.Err == nil && len(msg.Tree) == 1 && msg.Tree[0].ID == "books"
		case watchMsg:
			watchSeen = true
		}
	}
	if !loaded {
		t.Error("no TreeLoadedMsg for the chosen file")
	}
	if !watchSeen {
		t.Error("watch subscription not started")
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.General.DataFile != path || !saved.General.Watch {
		t.Errorf("saved config = %+v", saved.General)
	}
}

func TestCompleteSetupKeepsPinnedFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.DataFileEnv, "")

	app := NewApp(source.Sample(), Options{FirstRun: true, DataFile: "pinned.yaml", DataPinned: true})
	app.setupVals.DataFile = writeTreeFile(t)

	app, cmd := app.completeSetup()
	if cmd != nil || app.dataFile != "pinned.yaml" {
		t.Errorf("dataFile = %q, cmd = %v; want pinned file kept", app.dataFile, cmd != nil)
	}
}

func TestCompleteSetupWithoutWatcher(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.DataFileEnv, "")

	app := NewApp(source.Sample(), Options{FirstRun: true})
	app.setupVals.DataFile = writeTreeFile(t)
	app.setupVals.Watch = true

	app, cmd := app.completeSetup()
	if app.status != "watching starts on the next launch" {
		t.Errorf("status = %q", app.status)
	}
	if msgs := runCmd(cmd); len(msgs) != 1 {
		t.Errorf("got %d messages, want the reload only", len(msgs))
	}
}

func TestHelpOverlay(t *testing.T) {
	app := newTestApp(t)
	app = press(t, app, "?")
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	app = press(t, app, "j")
	if app.showHelp || app.cursor != 0 {
		t.Errorf("any key should close help without moving: help=%v cursor=%d", app.showHelp, app.cursor)
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	app := NewApp(source.Sample(), Options{})
	app = step(t, app, tea.WindowSizeMsg{Width: 80, Height: 9})

	app = press(t, app, "G")
	visible := app.visibleRows()
	if app.cursor < app.offset || app.cursor >= app.offset+visible {
		t.Errorf("cursor %d outside window [%d,%d)", app.cursor, app.offset, app.offset+visible)
	}
}

func TestValidateDataFile(t *testing.T) {
	for _, ok := range []string{"", "sales.json", "sales.YML", "sales.db"} {
		if err := validateDataFile(ok); err != nil {
			t.Errorf("validateDataFile(%q) = %v", ok, err)
		}
	}
	if err := validateDataFile("sales.csv"); err == nil {
		t.Error("csv accepted")
	}
}
