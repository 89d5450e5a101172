package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/cuesheet/internal/generate"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	headerStyle = accentStyle.Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	albumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))
	summaryBox  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// logMark is the prefix and color of a log line per progress level.
type logMark struct {
	prefix string
	style  lipgloss.Style
}

var logMarks = map[generate.ProgressLevel]logMark{
	generate.LevelInfo:    {"›", lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))},
	generate.LevelVerbose: {"•", dimStyle},
	generate.LevelWarning: {"!", lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))},
	generate.LevelError:   {"✗", accentStyle},
	generate.LevelSuccess: {"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))},
}

var helpText = map[State]string{
	StateInput:      "enter: start • f1-f4: toggle options • esc: quit",
	StateScanning:   "esc: cancel",
	StateGenerating: "esc: cancel",
	StateComplete:   "r: new run • q: quit",
	StateError:      "r: new run • q: quit",
}

// View renders the UI.
func (m Model) View() string {
	var body string
	switch m.state {
	case StateInput:
		body = m.inputView()
	case StateScanning:
		body = m.spinner.View() + " " + labelStyle.Render("Reading tags...") + "\n\n" + m.logView()
	case StateGenerating:
		body = m.generatingView()
	case StateComplete:
		body = summaryBox.Render(fmt.Sprintf("✓ Cuesheets written\n\nAlbums: %d\nWritten: %d\nFailed: %d",
			m.total, m.written, m.failed))
	case StateError:
		msg := "unknown error"
		if m.err != nil {
			msg = m.err.Error()
		}
		body = accentStyle.Render("✗ "+msg) + "\n\n" + m.logView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("♪ Cuesheet Generator"),
		dimStyle.Render("Write CUE sheets for album folders"),
		"",
		body,
		dimStyle.Render(helpText[m.state]),
	)
}

func (m Model) inputView() string {
	lines := []string{
		labelStyle.Render("Music folder:"),
		m.textInput.View(),
		"",
	}
	for _, t := range m.toggles {
		box := "[ ]"
		if t.on {
			box = "[×]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s (%s)", box, t.label, t.key))
	}
	lines = append(lines, "", dimStyle.Render("File name: "+m.settings.CuesheetFileNameFormat+".cue"), "")
	return strings.Join(lines, "\n")
}

func (m Model) generatingView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("%d album(s):", len(m.albums))))
	for i, album := range m.albums {
		if i == maxLogs {
			fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.albums)-maxLogs)))
			break
		}
		fmt.Fprintf(&b, "%s\n", albumStyle.Render("  ♪ "+album))
	}

	fmt.Fprintf(&b, "\n%s\n", m.progress.ViewAs(m.percent()))
	fmt.Fprintf(&b, "%d/%d written, %d failed\n\n", m.written, m.total, m.failed)
	b.WriteString(m.logView())

	return b.String()
}

func (m Model) logView() string {
	lines := make([]string, 0, len(m.logs))
	for _, entry := range m.logs {
		mark, ok := logMarks[entry.Level]
		if !ok {
			mark = logMarks[generate.LevelVerbose]
		}
		lines = append(lines, mark.style.Render(mark.prefix+" "+entry.Message))
	}
	return strings.Join(lines, "\n")
}
