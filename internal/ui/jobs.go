package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mkonda/sqtui/internal/slurm"
)

// jobColumns defines the queue table layout.
var jobColumns = []struct {
	title string
	width int
}{
	{"JOBID", 10},
	{"PARTITION", 10},
	{"NAME", 24},
	{"USER", 10},
	{"STATE", 12},
	{"TIME", 10},
	{"NODES", 5},
	{"NODELIST(REASON)", 24},
}

// renderJobs renders the job table pane.
func (m Model) renderJobs(height int) string {
	var b strings.Builder

	var header strings.Builder
	for i, col := range jobColumns {
		if i > 0 {
			header.WriteString("  ")
		}
		header.WriteString(pad(col.title, col.width))
	}
	b.WriteString(m.styles.TableHeader.Render(header.String()))
	b.WriteString("\n")

	jobs := m.registry.Jobs()
	if len(jobs) == 0 {
		b.WriteString(m.styles.MutedText.Render("No jobs in queue"))
		return b.String()
	}

	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	start := m.jobWindowStart(len(jobs), rows)
	end := start + rows
	if end > len(jobs) {
		end = len(jobs)
	}

	selected := m.registry.SelectedIndex()
	for i := start; i < end; i++ {
		line := jobRow(jobs[i])
		if i == selected {
			b.WriteString(m.styles.SelectedRow.Render(line))
		} else {
			b.WriteString(m.styles.stateStyle(jobs[i].State.Long()).Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// jobWindowStart keeps the selected row inside the visible slice.
func (m Model) jobWindowStart(total, rows int) int {
	selected := m.registry.SelectedIndex()
	if selected < 0 {
		return 0
	}
	start := selected - rows/2
	if start > total-rows {
		start = total - rows
	}
	if start < 0 {
		start = 0
	}
	return start
}

func jobRow(j slurm.Job) string {
	cols := []string{
		pad(j.ID, jobColumns[0].width),
		pad(j.Partition, jobColumns[1].width),
		pad(j.Name, jobColumns[2].width),
		pad(j.User, jobColumns[3].width),
		pad(j.State.Long(), jobColumns[4].width),
		pad(j.Elapsed, jobColumns[5].width),
		pad(j.NodeCount, jobColumns[6].width),
		pad(j.NodeList, jobColumns[7].width),
	}
	return strings.Join(cols, "  ")
}

// pad truncates or right-pads s to exactly width display cells. Width is
// measured in cells, not bytes, so multibyte names never split mid-rune.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
