// Package tui provides a Bubble Tea terminal user interface for cuesheet.
package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/cuesheet/internal/config"
	"github.com/handiism/cuesheet/internal/generate"
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

var (
	errCancelled = errors.New("cancelled by user")
	errNoAlbums  = errors.New("no albums found")
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateGenerating
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   generate.ProgressLevel
}

// Option toggles, in display order.
const (
	optMerge = iota
	optCoverArt
	optMusicBrainz
	optVerbose
)

type toggle struct {
	key   string
	label string
	on    bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	toggles   []toggle
	logs      []LogEntry
	albums    []string
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *generate.Manager
	events  chan generate.ProgressEvent

	written, failed, total int32
}

// NewModel creates a new TUI model starting from settings.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = defaultMusicDir()
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		toggles: []toggle{
			optMerge:       {"f1", "Merge existing cuesheets", settings.MergeExisting},
			optCoverArt:    {"f2", "Save cover art", settings.SaveCoverArt},
			optMusicBrainz: {"f3", "MusicBrainz ids", settings.MusicBrainzIDs},
			optVerbose:     {"f4", "Verbose output", settings.Verbose},
		},
		ctx:    ctx,
		cancel: cancel,
		events: make(chan generate.ProgressEvent, 64),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every event reported by the manager.
	ProgressMsg struct {
		Event generate.ProgressEvent
	}

	// ScanDoneMsg is sent when album scanning completes.
	ScanDoneMsg struct {
		Albums  []string
		Manager *generate.Manager
		Err     error
	}

	// GenerateDoneMsg is sent when all cuesheets are written.
	GenerateDoneMsg struct {
		Written int32
		Failed  int32
		Total   int32
		Err     error
	}

	// TickMsg polls the manager counters while generating.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.addLog(msg.Event)
		return m, m.waitForEvent()

	case ScanDoneMsg:
		switch {
		case msg.Err != nil:
			m.fail(msg.Err)
		case len(msg.Albums) == 0:
			m.fail(errNoAlbums)
		default:
			m.albums = msg.Albums
			m.manager = msg.Manager
			m.state = StateGenerating
			return m, tea.Batch(m.startGeneration(), tickProgress())
		}
		return m, nil

	case GenerateDoneMsg:
		m.written, m.failed, m.total = msg.Written, msg.Failed, msg.Total
		switch {
		case m.ctx.Err() != nil:
			m.fail(errCancelled)
		case msg.Err != nil:
			m.fail(msg.Err)
		default:
			m.state = StateComplete
		}
		return m, nil

	case TickMsg:
		if m.manager == nil || m.state != StateGenerating {
			return m, nil
		}
		m.written, m.failed, m.total = m.manager.GetProgress()
		return m, tea.Batch(m.progress.SetPercent(m.percent()), tickProgress())

	case progress.FrameMsg:
		next, cmd := m.progress.Update(msg)
		m.progress = next.(progress.Model)
		return m, cmd
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.state {
	case StateInput:
		switch key {
		case "esc":
			return m, tea.Quit
		case "enter":
			m.state = StateScanning
			return m, tea.Batch(m.scanAlbums(m.rootDir(), m.options()), m.waitForEvent(), m.spinner.Tick)
		}
		for i := range m.toggles {
			if m.toggles[i].key == key {
				m.toggles[i].on = !m.toggles[i].on
				return m, nil
			}
		}

	case StateScanning, StateGenerating:
		if key == "esc" {
			m.cancel()
			m.fail(errCancelled)
		}
		return m, nil

	case StateComplete, StateError:
		switch key {
		case "q":
			return m, tea.Quit
		case "r":
			return m.reset(), textinput.Blink
		}
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != StateInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// reset prepares the model for a new run, keeping the toggles.
func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.albums = nil
	m.err = nil
	m.written, m.failed, m.total = 0, 0, 0
	m.manager = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m *Model) fail(err error) {
	m.state = StateError
	m.err = err
}

func (m *Model) addLog(event generate.ProgressEvent) {
	if event.Level == generate.LevelVerbose && !m.toggles[optVerbose].on {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.written+m.failed) / float64(m.total)
}

// rootDir returns the entered folder, or the placeholder when empty.
func (m Model) rootDir() string {
	if dir := strings.TrimSpace(m.textInput.Value()); dir != "" {
		return dir
	}
	return m.textInput.Placeholder
}

// options returns a copy of the settings with the toggles applied.
func (m Model) options() *config.Settings {
	settings := *m.settings
	settings.MergeExisting = m.toggles[optMerge].on
	settings.SaveCoverArt = m.toggles[optCoverArt].on
	settings.MusicBrainzIDs = m.toggles[optMusicBrainz].on
	settings.Verbose = m.toggles[optVerbose].on
	return &settings
}

func defaultMusicDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Music")
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
