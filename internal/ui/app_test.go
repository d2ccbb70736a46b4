package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/mkonda/sqtui/internal/logpath"
	"github.com/mkonda/sqtui/internal/logtail"
	"github.com/mkonda/sqtui/internal/slurm"
)

// fakeSource serves canned squeue and scontrol results.
type fakeSource struct {
	jobs        []slurm.Job
	listErr     error
	listCalls   int
	details     map[string]slurm.JobDetails
	detailCalls []string
}

func (f *fakeSource) ListJobs(ctx context.Context) ([]slurm.Job, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func (f *fakeSource) FetchJobDetails(ctx context.Context, jobID string) (slurm.JobDetails, error) {
	f.detailCalls = append(f.detailCalls, jobID)
	d, ok := f.details[jobID]
	if !ok {
		return slurm.JobDetails{}, errors.New("unknown job")
	}
	return d, nil
}

func testJob(id string) slurm.Job {
	return slurm.Job{
		ID:        id,
		Partition: "gpu",
		Name:      "train-" + id,
		User:      "alice",
		State:     slurm.StateRunning,
		Elapsed:   "1:23",
		NodeCount: "1",
		NodeList:  "node01",
	}
}

func newTestModel(src *fakeSource, jobs []slurm.Job) Model {
	return New(Options{
		Source:      src,
		Resolver:    logpath.NewResolver(nil, false, nil),
		InitialJobs: jobs,
	})
}

func TestDispatchRefresh_CoalescesWhileInFlight(t *testing.T) {
	src := &fakeSource{jobs: []slurm.Job{testJob("1")}}
	m := newTestModel(src, src.jobs)

	cmd := m.dispatchRefresh()
	if cmd == nil {
		t.Fatalf("first dispatch returned nil cmd")
	}
	if m.dispatchRefresh() != nil {
		t.Fatalf("second dispatch started a poll while one was in flight")
	}

	msg, ok := cmd().(jobsMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want jobsMsg", cmd())
	}
	m.handleJobs(msg)
	if m.refreshInFlight {
		t.Fatalf("refreshInFlight still set after result arrived")
	}
	if m.dispatchRefresh() == nil {
		t.Fatalf("dispatch after completion returned nil cmd")
	}
}

func TestHandleJobs_ErrorKeepsStaleDataAndCountsFailures(t *testing.T) {
	src := &fakeSource{jobs: []slurm.Job{testJob("1"), testJob("2")}}
	m := newTestModel(src, src.jobs)

	m.dispatchRefresh()
	m.handleJobs(jobsMsg{err: errors.New("squeue: command not found")})
	if m.registry.Len() != 2 {
		t.Fatalf("registry lost jobs on poll failure: len = %d", m.registry.Len())
	}
	if m.consecutiveFailures != 1 {
		t.Fatalf("consecutiveFailures = %d, want 1", m.consecutiveFailures)
	}

	m.dispatchRefresh()
	m.handleJobs(jobsMsg{jobs: src.jobs})
	if m.consecutiveFailures != 0 {
		t.Fatalf("consecutiveFailures = %d after success, want 0", m.consecutiveFailures)
	}
}

func TestEnsureDetails_DispatchesOncePerJob(t *testing.T) {
	src := &fakeSource{
		jobs:    []slurm.Job{testJob("1")},
		details: map[string]slurm.JobDetails{"1": {StdoutPath: "/scratch/out.log", StderrPath: "/scratch/err.log"}},
	}
	m := newTestModel(src, src.jobs)

	cmd := m.ensureDetails()
	if cmd == nil {
		t.Fatalf("ensureDetails returned nil for job without details")
	}
	if m.ensureDetails() != nil {
		t.Fatalf("ensureDetails dispatched twice for the same job")
	}

	msg := cmd().(detailMsg)
	m.handleDetail(msg)
	job, _ := m.registry.Selected()
	if !job.HasDetails() {
		t.Fatalf("details not applied to selected job")
	}
	if job.StdoutPath.Path() != "/scratch/out.log" {
		t.Fatalf("StdoutPath = %q", job.StdoutPath.Path())
	}
	if m.ensureDetails() != nil {
		t.Fatalf("ensureDetails dispatched again after details were applied")
	}
}

func TestHandleDetail_StaleResultDiscarded(t *testing.T) {
	src := &fakeSource{
		jobs:    []slurm.Job{testJob("1"), testJob("2")},
		details: map[string]slurm.JobDetails{"1": {StdoutPath: "/a", StderrPath: "/b"}},
	}
	m := newTestModel(src, src.jobs)

	cmd := m.ensureDetails()
	msg := cmd().(detailMsg)

	// Selection moved before the fetch landed.
	m.registry.Select("2")
	if c := m.handleDetail(msg); c != nil {
		t.Fatalf("stale detail result triggered a follow-up cmd")
	}
	job, _ := m.registry.Job("1")
	if job.HasDetails() {
		t.Fatalf("stale detail result was applied to job 1")
	}
	if m.detailInFlight["1"] {
		t.Fatalf("in-flight marker for job 1 not cleared")
	}
}

func TestHandleLog_StaleKeyDiscarded(t *testing.T) {
	src := &fakeSource{jobs: []slurm.Job{testJob("1")}}
	jobs := []slurm.Job{testJob("1")}
	m := newTestModel(src, jobs)
	m.registry.ApplyDetails("1", slurm.JobDetails{StdoutPath: "/a", StderrPath: "/b"})

	if cmd := m.ensureLog(); cmd == nil {
		t.Fatalf("ensureLog returned nil for job with details")
	}
	staleKey := m.logKey

	// Stream toggled before the read landed.
	m.stream = StreamStderr
	m.ensureLog()

	m.handleLog(logMsg{key: staleKey, res: tailResult([]string{"old line"})})
	if len(m.logLines) != 0 {
		t.Fatalf("stale log result was applied: %v", m.logLines)
	}

	m.handleLog(logMsg{key: m.logKey, loc: logpath.Location{Kind: logpath.Local, Path: "/b"}, res: tailResult([]string{"fresh line"})})
	if len(m.logLines) != 1 || m.logLines[0] != "fresh line" {
		t.Fatalf("fresh log result not applied: %v", m.logLines)
	}
}

func TestEnsureLog_RecoversAfterDiscardedInFlightRead(t *testing.T) {
	src := &fakeSource{jobs: []slurm.Job{testJob("1"), testJob("2")}}
	m := newTestModel(src, src.jobs)
	m.registry.ApplyDetails("1", slurm.JobDetails{StdoutPath: "/a", StderrPath: "/b"})

	if cmd := m.ensureLog(); cmd == nil {
		t.Fatalf("ensureLog returned nil for job 1")
	}
	inFlight := m.logKey

	// Selection moves to a job whose details are still pending, so the
	// active log target does not change.
	m.registry.Select("2")
	if cmd := m.ensureLog(); cmd != nil {
		t.Fatalf("ensureLog dispatched for a job without details")
	}

	// Job 1's read lands late and is discarded.
	m.handleLog(logMsg{key: inFlight, res: tailResult([]string{"late line"})})
	if len(m.logLines) != 0 {
		t.Fatalf("stale log result was applied: %v", m.logLines)
	}

	// Back to job 1: the pane must be able to load again.
	m.registry.Select("1")
	if cmd := m.ensureLog(); cmd == nil {
		t.Fatalf("ensureLog never dispatches again after a discarded in-flight read")
	}
}

func TestEnsureLog_TargetChangeResetsViewport(t *testing.T) {
	src := &fakeSource{jobs: []slurm.Job{testJob("1"), testJob("2")}}
	m := newTestModel(src, src.jobs)
	m.registry.ApplyDetails("1", slurm.JobDetails{StdoutPath: "/a", StderrPath: "/b"})
	m.registry.ApplyDetails("2", slurm.JobDetails{StdoutPath: "/c", StderrPath: "/d"})
	m.logView = NewViewState(10)

	m.ensureLog()
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "x"
	}
	m.handleLog(logMsg{key: m.logKey, res: tailResult(lines)})
	m.logView.ScrollBy(-20)
	if m.logView.AtBottom() {
		t.Fatalf("viewport still pinned after scrolling up")
	}

	m.registry.Select("2")
	m.ensureLog()
	if len(m.logLines) != 0 {
		t.Fatalf("log lines survived a target change")
	}
	if !m.logView.AtBottom() {
		t.Fatalf("viewport not re-pinned after target change")
	}
}

func TestHostHint(t *testing.T) {
	tests := []struct {
		nodeList string
		expected string
	}{
		{"node01", "node01"},
		{"node01,node02", "node01"},
		{"gpu[03-07]", "gpu03"},
		{"gpu[03,09]", "gpu03"},
		{"(Resources)", ""},
		{"(None)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := hostHint(tt.nodeList); got != tt.expected {
			t.Errorf("hostHint(%q) = %q, want %q", tt.nodeList, got, tt.expected)
		}
	}
}

func tailResult(lines []string) logtail.Result {
	return logtail.Result{Lines: lines, TotalLines: len(lines), Complete: true}
}
