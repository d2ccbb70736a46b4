package ui

import (
	"fmt"
	"strings"

	"github.com/mkonda/sqtui/internal/logpath"
)

// renderLogs renders the log pane for the selected job.
func (m Model) renderLogs(height int) string {
	var b strings.Builder
	b.WriteString(m.renderLogStatus())
	b.WriteString("\n")

	job, ok := m.registry.Selected()
	switch {
	case !ok:
		b.WriteString(m.styles.MutedText.Render("No job selected"))
	case !job.HasDetails():
		b.WriteString(m.styles.MutedText.Render("Fetching job details..."))
	case m.logLoc.Kind == logpath.Unresolvable && m.logLoc.Err != nil:
		b.WriteString(m.styles.WarningText.Render("Log not accessible: " + m.logLoc.Err.Error()))
	case m.logErr != nil:
		b.WriteString(m.styles.DangerText.Render("Log read failed: " + m.logErr.Error()))
	case m.logLoading && len(m.logLines) == 0:
		b.WriteString(m.styles.MutedText.Render("Loading log..."))
	case len(m.logLines) == 0:
		b.WriteString(m.styles.MutedText.Render("Log is empty"))
	default:
		window := m.logView.Window(m.logLines)
		for i, line := range window {
			b.WriteString(line)
			if i < len(window)-1 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// renderLogStatus builds the one-line summary above the log body.
func (m Model) renderLogStatus() string {
	job, ok := m.registry.Selected()
	if !ok {
		return m.styles.StatusBar.Render("logs")
	}

	parts := []string{fmt.Sprintf("job %s", job.ID), m.stream.String()}

	switch m.logLoc.Kind {
	case logpath.Local:
		parts = append(parts, m.logLoc.Path)
	case logpath.Remote:
		parts = append(parts, fmt.Sprintf("ssh:%s:%s", m.logLoc.Host, m.logLoc.Path))
	}

	if len(m.logLines) > 0 {
		first := m.logView.TopOffset() + 1
		last := m.logView.TopOffset() + len(m.logView.Window(m.logLines))
		total := fmt.Sprintf("%d", m.logTotal)
		if !m.logComplete {
			// Tail window only; the true line count is unknown.
			total = fmt.Sprintf("last %d", m.logTotal)
		}
		parts = append(parts, fmt.Sprintf("lines %d-%d of %s", first, last, total))
	}
	if m.logView.AtBottom() {
		parts = append(parts, "follow")
	}
	return m.styles.StatusBar.Render(strings.Join(parts, " | "))
}
