package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/cuesheet/internal/config"
	"github.com/handiism/cuesheet/internal/generate"
)

func tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event. Update re-arms it after
// every ProgressMsg.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// scanAlbums creates the manager and reads the albums below root.
func (m Model) scanAlbums(root string, settings *config.Settings) tea.Cmd {
	ctx, events := m.ctx, m.events
	return func() tea.Msg {
		manager := generate.NewManager(settings, func(event generate.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		if err := manager.Initialize(ctx, root); err != nil {
			return ScanDoneMsg{Err: err}
		}
		return ScanDoneMsg{Albums: manager.GetAlbumNames(), Manager: manager}
	}
}

func (m Model) startGeneration() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		err := manager.StartGeneration(ctx)
		written, failed, total := manager.GetProgress()
		return GenerateDoneMsg{Written: written, Failed: failed, Total: total, Err: err}
	}
}
