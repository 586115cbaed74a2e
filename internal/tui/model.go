package tui

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"minifyall/internal/core"
	"minifyall/internal/sizes"
	"minifyall/internal/state"
	"minifyall/pkg/document"
)

// View identifies the screen currently shown.
type View int

const (
	ViewFileList View = iota
	ViewResult
	ViewQuitting
)

// Minifier is what the TUI needs from core.Service.
type Minifier interface {
	MinifyFile(ctx context.Context, path string, target core.Target) (*core.Result, error)
	History() (state.History, error)
}

// FileItem represents a minifiable file in the list.
type FileItem struct {
	Path     string
	Rel      string
	Language document.Language
}

func (f FileItem) Title() string       { return f.Rel }
func (f FileItem) Description() string { return string(f.Language) }
func (f FileItem) FilterValue() string { return f.Rel }

// model is the Bubbletea model for the TUI.
type model struct {
	ActiveView View
	list       list.Model
	history    table.Model
	svc        Minifier
	dir        string

	last    *core.Result
	err     error
	working bool

	height int
	width  int
}

const defaultWidth = 80

// InitialModel creates the TUI model for files under dir. Previously recorded
// history is shown in the table.
func InitialModel(items []list.Item, dir string, height int, svc Minifier) model {
	listHeight := max(height-16, 5)
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, defaultWidth, listHeight)
	l.Title = dir
	l.SetShowHelp(false)

	t := table.New(
		table.WithColumns(historyColumns(defaultWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(8),
	)

	m := model{
		ActiveView: ViewFileList,
		list:       l,
		history:    t,
		svc:        svc,
		dir:        dir,
		height:     height,
		width:      defaultWidth,
	}
	if h, err := svc.History(); err == nil {
		for _, e := range h {
			m.appendHistory(e)
		}
	}
	return m
}

func historyColumns(width int) []table.Column {
	fixed := 4 * 10
	fileWidth := max(width-fixed-8, 12)
	return []table.Column{
		{Title: "File", Width: fileWidth},
		{Title: "Original", Width: 10},
		{Title: "Minified", Width: 10},
		{Title: "Gzip", Width: 10},
		{Title: "Saved", Width: 10},
	}
}

func (m *model) appendHistory(e state.HistoryEntry) {
	r := e.Report()
	row := table.Row{
		displayPath(m.dir, e.Path),
		sizes.Human(r.Original),
		sizes.Human(r.Minified),
		sizes.Human(r.Gzip),
		sizes.Human(r.Saved()),
	}
	// newest first
	m.history.SetRows(append([]table.Row{row}, m.history.Rows()...))
}

func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !filepath.IsAbs(rel) && rel != "" && rel[0] != '.' {
		return rel
	}
	return path
}
