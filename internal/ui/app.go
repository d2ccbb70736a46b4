// Package ui provides the Bubble Tea terminal interface for sqtui.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mkonda/sqtui/internal/logpath"
	"github.com/mkonda/sqtui/internal/registry"
	"github.com/mkonda/sqtui/internal/remote"
	"github.com/mkonda/sqtui/internal/slurm"
)

const (
	paneJobs = iota
	paneLogs
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Source      slurm.Source
	Resolver    *logpath.Resolver
	Remote      remote.FileReader
	Logger      *zap.Logger
	PollTick    time.Duration
	TailLines   int
	InitialJobs []slurm.Job
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	source   slurm.Source
	resolver *logpath.Resolver
	remote   remote.FileReader
	log      *zap.Logger

	registry  *registry.Registry
	pollTick  time.Duration
	tailLines int

	// UI state
	keys        keyMap
	help        help.Model
	styles      Styles
	width       int
	height      int
	ready       bool
	focusedPane int
	showHelp    bool

	// Poll state
	refreshInFlight     bool
	detailInFlight      map[string]bool
	consecutiveFailures int
	lastUpdated         time.Time

	// Log pane state
	stream      Stream
	logKey      logKey
	logLines    []string
	logLoc      logpath.Location
	logErr      error
	logLoading  bool
	logComplete bool
	logTotal    int
	logView     ViewState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 2 * time.Second
	}
	tailLines := opts.TailLines
	if tailLines <= 0 {
		tailLines = 1000
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		ctx:            ctx,
		source:         opts.Source,
		resolver:       opts.Resolver,
		remote:         opts.Remote,
		log:            logger,
		registry:       registry.New(opts.InitialJobs),
		pollTick:       pollTick,
		tailLines:      tailLines,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		styles:         DefaultStyles(),
		detailInFlight: make(map[string]bool),
		lastUpdated:    time.Now(),
		logView:        NewViewState(1),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.ensureDetails(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logView.Resize(m.logPaneHeight() - 1)
		return m, nil

	case tickMsg:
		return m, tea.Batch(
			m.dispatchRefresh(),
			m.ensureDetails(),
			m.ensureLog(),
			tickCmd(m.pollTick),
		)

	case jobsMsg:
		return m, m.handleJobs(msg)

	case detailMsg:
		return m, m.handleDetail(msg)

	case logMsg:
		m.handleLog(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == paneJobs {
			m.focusedPane = paneLogs
		} else {
			m.focusedPane = paneJobs
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatchRefresh()
	case key.Matches(msg, m.keys.ToggleStream):
		if m.stream == StreamStdout {
			m.stream = StreamStderr
		} else {
			m.stream = StreamStdout
		}
		return m, m.ensureLog()
	}

	if m.focusedPane == paneJobs {
		return m.handleJobsKey(msg)
	}
	return m.handleLogsKey(msg)
}

// handleJobsKey moves the selection in the job table.
func (m Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.registry.SelectedID()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.registry.SelectNext()
	case key.Matches(msg, m.keys.Up):
		m.registry.SelectPrev()
	case key.Matches(msg, m.keys.Top):
		m.registry.SelectFirst()
	case key.Matches(msg, m.keys.Bottom):
		m.registry.SelectLast()
	default:
		return m, nil
	}
	if m.registry.SelectedID() != before {
		return m, tea.Batch(m.ensureDetails(), m.ensureLog())
	}
	return m, nil
}

// handleLogsKey scrolls the log viewport.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.logView.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.logView.ScrollBy(-1)
	case key.Matches(msg, m.keys.Top):
		m.logView.JumpTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logView.JumpBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logView.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logView.HalfPageUp()
	}
	return m, nil
}

// jobPaneHeight is the row budget for the queue table including its header.
func (m Model) jobPaneHeight() int {
	h := (m.height - 3) * 2 / 5
	if h < 3 {
		h = 3
	}
	return h
}

// logPaneHeight is the row budget for the log pane including its status line.
func (m Model) logPaneHeight() int {
	h := m.height - 3 - m.jobPaneHeight()
	if h < 2 {
		h = 2
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderJobs(m.jobPaneHeight()))
	b.WriteString("\n")
	b.WriteString(m.renderLogs(m.logPaneHeight()))
	b.WriteString("\n")
	b.WriteString(m.styles.StatusBar.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return b.String()
}

// renderHeader renders the title bar with poll health.
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("sqtui")
	status := fmt.Sprintf("%d jobs | updated %s", m.registry.Len(), m.lastUpdated.Format("15:04:05"))
	if m.consecutiveFailures > 0 {
		status = m.styles.DangerText.Render(fmt.Sprintf("squeue unreachable (%d failures) | showing stale data", m.consecutiveFailures))
	}
	return title + "  " + m.styles.MutedText.Render(status)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
