package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"minifyall/internal/sizes"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// ModelView renders the TUI model's view as a string.
func ModelView(m model) string {
	switch m.ActiveView {
	case ViewQuitting:
		return "Goodbye!\n"
	case ViewResult:
		return resultView(m)
	default:
		return fileListView(m)
	}
}

func fileListView(m model) string {
	fileList := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(0, 1).
		Render(m.list.View())

	status := hintStyle.Render("enter: minify to new file • /: filter • q: quit")
	switch {
	case m.working:
		status = headerStyle.Render("Minifying...")
	case m.err != nil:
		status = errorStyle.Render(wrapText("Error: "+m.err.Error(), max(m.width-2, 20)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fileList,
		status,
		historyView(m),
	)
}

func resultView(m model) string {
	if m.last == nil {
		return fileListView(m)
	}
	r := m.last.Sizes
	saved := 1 - r.Ratio()

	pb := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	block := lipgloss.NewStyle().Padding(1).BorderStyle(lipgloss.RoundedBorder()).Render(
		fmt.Sprintf(
			"%s\n%s\n%s\n%s\n\n%s",
			headerStyle.Render("Minified: ")+displayPath(m.dir, m.last.Path),
			headerStyle.Render("Written to: ")+displayPath(m.dir, m.last.OutputPath),
			fmt.Sprintf("%s -> %s  gzip %s  brotli %s",
				sizes.Human(r.Original), sizes.Human(r.Minified), sizes.Human(r.Gzip), sizes.Human(r.Brotli)),
			pb.ViewAs(saved),
			hintStyle.Render("Press Enter to return to the list or q/Ctrl+C to quit."),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, block, historyView(m))
	contentLines := strings.Count(content, "\n") + 1
	if m.height > contentLines {
		content += strings.Repeat("\n", m.height-contentLines)
	}
	return content
}

func historyView(m model) string {
	if len(m.history.Rows()) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingTop(1).Render(headerStyle.Render("History")),
		m.history.View(),
	)
}
