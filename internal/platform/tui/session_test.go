package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	_ "github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	setup := Setup{RecordFile: filepath.Join(t.TempDir(), storage.DefaultRecordFile)}
	return NewSessionModel(setup, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 3})
}

func TestSessionStartsGame(t *testing.T) {
	m := newTestSession(t)
	if !strings.Contains(m.View(), "Tank Battle") {
		t.Fatalf("menu does not list the game:\n%s", m.View())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.gameModel.setup.Difficulty != "fixed" {
		t.Errorf("difficulty = %q, want fixed", m.gameModel.setup.Difficulty)
	}

	m = sessionUpdate(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q in game should quit the session")
	}
}

func TestSessionDifficultySelection(t *testing.T) {
	m := newTestSession(t)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.menu.Difficulty(); got != "easy" {
		t.Fatalf("difficulty = %q, want easy", got)
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.menu.Difficulty(); got != "hard" {
		t.Fatalf("difficulty = %q, want hard after wrapping left", got)
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil || m.gameModel.setup.Difficulty != "hard" {
		t.Fatal("game did not start with the chosen difficulty")
	}
}

func TestSessionRecordsAndBack(t *testing.T) {
	m := newTestSession(t)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenRecords {
		t.Fatalf("screen = %v, want records", m.screen)
	}
	if !strings.Contains(m.View(), "Best time: --:--") {
		t.Errorf("records view missing best time:\n%s", m.View())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
	if m.quitting {
		t.Error("esc on records should not quit")
	}
}

func TestSessionPauseExitReturnsToMenu(t *testing.T) {
	m := newTestSession(t)
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for _, msg := range []tea.Msg{
		runeKey('p'),
		TickMsg{},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
		TickMsg{},
	} {
		m = sessionUpdate(t, m, msg)
	}

	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu after leaving the match", m.screen)
	}
	if m.setup.Difficulty != "fixed" {
		t.Errorf("difficulty = %q, want fixed kept", m.setup.Difficulty)
	}
}
