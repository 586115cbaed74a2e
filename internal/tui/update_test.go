package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"minifyall/internal/config"
	"minifyall/internal/core"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func setupModel(t *testing.T) (model, string, *core.Service) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.css"), []byte("a { color: #ffffff; }\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.json"), []byte("{\"a\": }"), 0644); err != nil {
		t.Fatal(err)
	}
	svc := core.NewService(config.Defaults(), core.NewInMemoryHistoryStore())
	items, err := LoadFiles(dir, svc.Accepts)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	return InitialModel(items, dir, 40, svc), dir, svc
}

func TestEnterMinifiesSelectedFile(t *testing.T) {
	m, dir, svc := setupModel(t)

	m, cmd := Update(m, key("enter"))
	if !m.working || cmd == nil {
		t.Fatalf("expected minify command, working=%v", m.working)
	}
	if !strings.Contains(ModelView(m), "Minifying...") {
		t.Error("expected working status in view")
	}

	// second enter while busy does nothing
	if _, again := Update(m, key("enter")); again != nil {
		t.Error("expected no command while minifying")
	}

	m, _ = Update(m, cmd())
	if m.ActiveView != ViewResult {
		t.Fatalf("ActiveView = %v, want ViewResult", m.ActiveView)
	}
	if m.last == nil || m.last.Output != "a{color:#fff}" {
		t.Fatalf("last result = %+v", m.last)
	}
	if got, err := os.ReadFile(filepath.Join(dir, "a-min.css")); err != nil || string(got) != "a{color:#fff}" {
		t.Errorf("a-min.css = %q, %v", got, err)
	}
	if rows := m.history.Rows(); len(rows) != 1 || rows[0][0] != "a.css" {
		t.Errorf("history rows = %v", rows)
	}
	if h, _ := svc.History(); len(h) != 1 {
		t.Errorf("service history has %d entries", len(h))
	}
	if view := ModelView(m); !strings.Contains(view, "a-min.css") || !strings.Contains(view, "History") {
		t.Errorf("result view missing details:\n%s", view)
	}

	m, _ = Update(m, key("enter"))
	if m.ActiveView != ViewFileList {
		t.Errorf("ActiveView = %v, want ViewFileList", m.ActiveView)
	}
}

func TestMinifyErrorStaysOnList(t *testing.T) {
	m, _, _ := setupModel(t)
	m.list.Select(1) // b.json

	m, cmd := Update(m, key("enter"))
	if cmd == nil {
		t.Fatal("expected minify command")
	}
	m, _ = Update(m, cmd())

	if m.ActiveView != ViewFileList {
		t.Errorf("ActiveView = %v, want ViewFileList", m.ActiveView)
	}
	if m.err == nil || m.working {
		t.Errorf("err = %v, working = %v", m.err, m.working)
	}
	if !strings.Contains(ModelView(m), "Error:") {
		t.Error("error not shown in view")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m, _, _ := setupModel(t)
		m, cmd := Update(m, key(k))
		if m.ActiveView != ViewQuitting || cmd == nil {
			t.Errorf("%s: ActiveView = %v, cmd nil = %v", k, m.ActiveView, cmd == nil)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
		if ModelView(m) != "Goodbye!\n" {
			t.Errorf("%s: unexpected quitting view", k)
		}
	}
}

func TestWindowResize(t *testing.T) {
	m, _, _ := setupModel(t)
	m, _ = Update(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.width != 120 || m.height != 50 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if cols := m.history.Columns(); len(cols) != 5 || cols[0].Width != 120-40-8 {
		t.Errorf("columns = %+v", cols)
	}
}
