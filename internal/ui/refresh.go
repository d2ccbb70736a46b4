package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mkonda/sqtui/internal/logpath"
	"github.com/mkonda/sqtui/internal/logtail"
	"github.com/mkonda/sqtui/internal/remote"
	"github.com/mkonda/sqtui/internal/slurm"
)

var _ logtail.ByteSource = (*remote.RangeReader)(nil)

// Stream selects which output file the log pane shows.
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
)

func (s Stream) String() string {
	if s == StreamStderr {
		return "stderr"
	}
	return "stdout"
}

// logKey identifies one log target. Results carrying a key that no longer
// matches the selection are dropped.
type logKey struct {
	jobID  string
	stream Stream
}

// Messages

type tickMsg time.Time

type jobsMsg struct {
	jobs []slurm.Job
	err  error
}

type detailMsg struct {
	jobID   string
	details slurm.JobDetails
	err     error
}

type logMsg struct {
	key logKey
	loc logpath.Location
	res logtail.Result
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchJobsCmd() tea.Cmd {
	return func() tea.Msg {
		jobs, err := m.source.ListJobs(m.ctx)
		return jobsMsg{jobs: jobs, err: err}
	}
}

func (m Model) fetchDetailsCmd(jobID string) tea.Cmd {
	return func() tea.Msg {
		details, err := m.source.FetchJobDetails(m.ctx, jobID)
		return detailMsg{jobID: jobID, details: details, err: err}
	}
}

// loadLogCmd resolves the log path and reads its tail. Everything slow
// (stat, open, ssh) happens inside the command, off the update loop.
func (m Model) loadLogCmd(key logKey, path, hostHint string) tea.Cmd {
	resolver := m.resolver
	maxLines := m.tailLines
	sshClient := m.remote
	return func() tea.Msg {
		loc := resolver.Resolve(path, hostHint)
		switch loc.Kind {
		case logpath.Local:
			res, err := logtail.ReadTailFile(loc.Path, maxLines)
			return logMsg{key: key, loc: loc, res: res, err: err}
		case logpath.Remote:
			src := remote.NewRangeReader(sshClient, loc.Host, loc.Path)
			res, err := logtail.ReadTail(src, maxLines)
			return logMsg{key: key, loc: loc, res: res, err: err}
		default:
			return logMsg{key: key, loc: loc, err: loc.Err}
		}
	}
}

// currentLogKey returns the key a log result must carry to be applied.
func (m Model) currentLogKey() (logKey, bool) {
	job, ok := m.registry.Selected()
	if !ok {
		return logKey{}, false
	}
	return logKey{jobID: job.ID, stream: m.stream}, true
}

// dispatchRefresh starts a job list poll unless one is already in flight.
func (m *Model) dispatchRefresh() tea.Cmd {
	if m.refreshInFlight {
		return nil
	}
	m.refreshInFlight = true
	return m.fetchJobsCmd()
}

// ensureDetails requests output paths for the selected job when they have
// not been fetched and no fetch for that job is running.
func (m *Model) ensureDetails() tea.Cmd {
	job, ok := m.registry.Selected()
	if !ok || job.HasDetails() {
		return nil
	}
	if m.detailInFlight[job.ID] {
		return nil
	}
	m.detailInFlight[job.ID] = true
	return m.fetchDetailsCmd(job.ID)
}

// ensureLog starts a tail read for the selected job's current stream. A
// target change resets the viewport to follow the new log's bottom.
func (m *Model) ensureLog() tea.Cmd {
	job, ok := m.registry.Selected()
	if !ok || !job.HasDetails() {
		return nil
	}
	key := logKey{jobID: job.ID, stream: m.stream}
	if key != m.logKey {
		m.logKey = key
		m.logLines = nil
		m.logErr = nil
		m.logLoc = logpath.Location{}
		m.logView = NewViewState(m.logView.Height())
		m.logLoading = false
	}
	if m.logLoading {
		return nil
	}
	m.logLoading = true

	path := job.StdoutPath.Path()
	if m.stream == StreamStderr {
		path = job.StderrPath.Path()
	}
	return m.loadLogCmd(key, path, hostHint(job.NodeList))
}

// handleJobs folds a poll result into the registry.
func (m *Model) handleJobs(msg jobsMsg) tea.Cmd {
	m.refreshInFlight = false
	if msg.err != nil {
		m.consecutiveFailures++
		m.log.Warn("squeue poll failed", zap.Error(msg.err), zap.Int("consecutive", m.consecutiveFailures))
		return nil
	}
	m.consecutiveFailures = 0
	m.lastUpdated = time.Now()
	m.registry.Reconcile(msg.jobs)
	return tea.Batch(m.ensureDetails(), m.ensureLog())
}

// handleDetail applies a detail fetch result. Results for jobs no longer
// selected are discarded without touching the registry.
func (m *Model) handleDetail(msg detailMsg) tea.Cmd {
	delete(m.detailInFlight, msg.jobID)
	if msg.err != nil {
		m.log.Warn("scontrol fetch failed", zap.String("job", msg.jobID), zap.Error(msg.err))
		return nil
	}
	if m.registry.SelectedID() != msg.jobID {
		return nil
	}
	m.registry.ApplyDetails(msg.jobID, msg.details)
	return m.ensureLog()
}

// handleLog applies a tail read result unless the target moved on. The
// in-flight marker is cleared for any result carrying the active key, even
// a discarded one, so a later reselection can dispatch again.
func (m *Model) handleLog(msg logMsg) {
	if msg.key == m.logKey {
		m.logLoading = false
	}
	current, ok := m.currentLogKey()
	if !ok || msg.key != current || msg.key != m.logKey {
		return
	}
	m.logLoc = msg.loc
	if msg.err != nil {
		m.logErr = msg.err
		return
	}
	m.logErr = nil
	m.logLines = msg.res.Lines
	m.logComplete = msg.res.Complete
	m.logTotal = msg.res.TotalLines
	m.logView.Apply(len(msg.res.Lines))
}

// hostHint extracts the first node from a squeue node list. Pending jobs
// carry a parenthesized reason instead of nodes.
func hostHint(nodeList string) string {
	nodeList = strings.TrimSpace(nodeList)
	if nodeList == "" || strings.HasPrefix(nodeList, "(") {
		return ""
	}
	if i := strings.IndexByte(nodeList, ','); i >= 0 && !strings.Contains(nodeList[:i], "[") {
		nodeList = nodeList[:i]
	}
	// Compressed ranges like gpu[03-07] name gpu03 first.
	if open := strings.IndexByte(nodeList, '['); open >= 0 {
		inner := nodeList[open+1:]
		end := strings.IndexAny(inner, "-,]")
		if end < 0 {
			return nodeList
		}
		return nodeList[:open] + inner[:end]
	}
	return nodeList
}
