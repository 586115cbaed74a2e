package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"minifyall/internal/core"
)

// Message types for Bubbletea update loop
type minifiedMsg struct{ res *core.Result }
type minifyErrMsg struct{ err error }

// minifyCmd minifies path to a new file in the background.
func minifyCmd(svc Minifier, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.MinifyFile(context.Background(), path, core.TargetNewFile)
		if err != nil {
			return minifyErrMsg{err}
		}
		return minifiedMsg{res}
	}
}

// Update handles all Bubbletea update logic for the TUI model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case minifiedMsg:
		return handleMinified(m, msg)
	case minifyErrMsg:
		m.working = false
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		if m.ActiveView == ViewFileList {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewQuitting:
		return m, nil

	case ViewResult:
		switch k {
		case "ctrl+c", "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "enter", " ", "esc":
			m.ActiveView = ViewFileList
			return m, nil
		}
		return m, nil

	case ViewFileList:
		// While filtering, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch k {
		case "ctrl+c", "q":
			m.ActiveView = ViewQuitting
			return m, tea.Quit
		case "enter":
			if m.working {
				return m, nil
			}
			if item, ok := m.list.SelectedItem().(FileItem); ok {
				m.working = true
				m.err = nil
				return m, minifyCmd(m.svc, item.Path)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func handleMinified(m model, msg minifiedMsg) (model, tea.Cmd) {
	m.working = false
	m.err = nil
	m.last = msg.res
	m.appendHistory(msg.res.Entry)
	m.ActiveView = ViewResult
	return m, nil
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width
	m.list.SetHeight(max(msg.Height-16, 5))
	m.list.SetWidth(msg.Width)
	m.history.SetColumns(historyColumns(msg.Width))
	m.history.SetWidth(msg.Width)
	return m, nil
}
