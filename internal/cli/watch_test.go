package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	app "github.com/robofleet/amrsim/internal"
)

func newWatchApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.NewApp(t.TempDir(), app.Options{Seed: 1})
	if err != nil {
		t.Fatalf("creating app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestWatchModel_QuitKeys(t *testing.T) {
	m := newWatchModel(newWatchApp(t))
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestWatchModel_FrameAdvancesSimulation(t *testing.T) {
	a := newWatchApp(t)
	m := newWatchModel(a)

	before := a.Fleet.SimTime()
	next, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	if a.Fleet.SimTime() <= before {
		t.Errorf("expected sim time to advance, got %g", a.Fleet.SimTime())
	}
	m = next.(watchModel)
	if m.err != nil {
		t.Errorf("unexpected tick error: %v", m.err)
	}
}

func TestWatchModel_AddTaskKey(t *testing.T) {
	a := newWatchApp(t)
	m := newWatchModel(a)

	before := a.Fleet.Status().PendingTasks
	next, _ := m.Update(keyMsg("a"))
	m = next.(watchModel)
	if m.err != nil {
		t.Fatalf("adding task: %v", m.err)
	}
	if got := a.Fleet.Status().PendingTasks; got != before+1 {
		t.Errorf("expected %d pending tasks, got %d", before+1, got)
	}
}

func TestWatchModel_ViewShowsFleet(t *testing.T) {
	a := newWatchApp(t)
	m := newWatchModel(a)

	out := m.View()
	for _, want := range []string{"Fleet Status", "AMR-01", "q: quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
