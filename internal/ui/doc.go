// Package ui provides the terminal user interface for sqtui.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program with two stacked panes: a job queue table
// on top and a log tail pane below. The interface is read-only; it never
// submits, cancels, or modifies jobs.
//
// # Package Structure
//
//   - app.go: Root model, key dispatch, layout, and the main Run function
//   - refresh.go: Poll/fetch messages and the commands that produce them
//   - viewstate.go: Sticky-bottom scroll state for the log pane
//   - jobs.go: Queue table rendering
//   - logs.go: Log pane rendering and status line
//   - keys.go: Key bindings and help text
//   - styles.go: Lipgloss color scheme
//
// # Refresh Model
//
// A tick message fires at the configured interval. Each tick starts at most
// one squeue poll; ticks that arrive while a poll is in flight reschedule
// without starting another. Output paths for the selected job are fetched
// lazily via scontrol, once per job, and the selected log file is re-read
// on every tick so a pinned viewport follows new output.
//
// Background results carry the identity of the job (and stream) they were
// fetched for. A result whose identity no longer matches the current
// selection is discarded, so slow fetches can never overwrite state that
// belongs to a different target.
//
// # Key Bindings
//
//   - j/k or arrows: Move selection / scroll logs
//   - g/G: Jump to top/bottom
//   - Ctrl+D/Ctrl+U: Half page down/up (log pane)
//   - Tab: Switch pane focus
//   - l: Toggle stdout/stderr
//   - r: Refresh now
//   - ?: Help overlay
//   - q or Ctrl+C: Quit
package ui
