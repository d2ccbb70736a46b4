package registry

import (
	"testing"

	"github.com/mkonda/sqtui/internal/slurm"
)

func job(id string) slurm.Job {
	return slurm.Job{ID: id, Name: "job-" + id, State: slurm.StateRunning}
}

func jobWithDetails(id, stdout, stderr string) slurm.Job {
	j := job(id)
	j.StdoutPath = slurm.ResolvedPath(stdout)
	j.StderrPath = slurm.ResolvedPath(stderr)
	return j
}

func TestReconcile_CarriesForwardFetchedPaths(t *testing.T) {
	r := New([]slurm.Job{jobWithDetails("1", "/out/1", "/err/1"), job("2")})

	r.Reconcile([]slurm.Job{job("1"), job("2")})

	merged, ok := r.Job("1")
	if !ok {
		t.Fatal("job 1 missing after reconcile")
	}
	if !merged.StdoutPath.Known() || merged.StdoutPath.Path() != "/out/1" {
		t.Fatalf("StdoutPath = %#v, want resolved /out/1", merged.StdoutPath)
	}
	if !merged.StderrPath.Known() || merged.StderrPath.Path() != "/err/1" {
		t.Fatalf("StderrPath = %#v, want resolved /err/1", merged.StderrPath)
	}

	untouched, _ := r.Job("2")
	if untouched.StdoutPath.Known() {
		t.Fatal("job 2 should stay unknown")
	}
}

func TestReconcile_FreshFieldsWin(t *testing.T) {
	old := jobWithDetails("1", "/out/1", "/err/1")
	old.State = slurm.StatePending
	r := New([]slurm.Job{old})

	fresh := job("1")
	fresh.State = slurm.StateRunning
	fresh.Elapsed = "5:00"
	r.Reconcile([]slurm.Job{fresh})

	merged, _ := r.Job("1")
	if merged.State != slurm.StateRunning || merged.Elapsed != "5:00" {
		t.Fatalf("merged = %#v, want fresh state and elapsed", merged)
	}
	if merged.StdoutPath.Path() != "/out/1" {
		t.Fatalf("StdoutPath = %q, want carried-forward /out/1", merged.StdoutPath.Path())
	}
}

func TestReconcile_DropsVanishedJobs(t *testing.T) {
	r := New([]slurm.Job{jobWithDetails("1", "/out/1", "/err/1"), job("2")})

	r.Reconcile([]slurm.Job{job("2")})

	if _, ok := r.Job("1"); ok {
		t.Fatal("job 1 should be dropped with its cached detail")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	// A job that later reappears starts from scratch.
	r.Reconcile([]slurm.Job{job("1"), job("2")})
	back, _ := r.Job("1")
	if back.StdoutPath.Known() {
		t.Fatal("reappearing job must not resurrect dropped detail")
	}
}

func TestReconcile_SelectionPreservedByID(t *testing.T) {
	r := New([]slurm.Job{job("1"), job("2"), job("3")})
	r.Select("2")

	// Order shuffles; id 2 survives at a different position.
	r.Reconcile([]slurm.Job{job("3"), job("2")})

	if r.SelectedID() != "2" {
		t.Fatalf("SelectedID = %q, want 2", r.SelectedID())
	}
	if r.SelectedIndex() != 1 {
		t.Fatalf("SelectedIndex = %d, want 1", r.SelectedIndex())
	}
}

func TestReconcile_SelectionFallsBackToPriorPosition(t *testing.T) {
	r := New([]slurm.Job{job("1"), job("2"), job("3")})
	r.Select("2")

	// Selected job vanished: selection moves to the row now at index 1.
	r.Reconcile([]slurm.Job{job("1"), job("3")})
	if r.SelectedID() != "3" {
		t.Fatalf("SelectedID = %q, want 3 (prior row position)", r.SelectedID())
	}

	// Selected again at the last row; shrink clamps to the new last row.
	r.Select("3")
	r.Reconcile([]slurm.Job{job("1")})
	if r.SelectedID() != "1" {
		t.Fatalf("SelectedID = %q, want 1 (clamped)", r.SelectedID())
	}
}

func TestReconcile_EmptySnapshotClearsSelection(t *testing.T) {
	r := New([]slurm.Job{job("1")})

	r.Reconcile(nil)
	if r.SelectedID() != "" {
		t.Fatalf("SelectedID = %q, want empty", r.SelectedID())
	}
	if _, ok := r.Selected(); ok {
		t.Fatal("Selected should report nothing selected")
	}

	// Selection never points at a nonexistent id.
	r.Reconcile([]slurm.Job{job("9")})
	if r.SelectedID() != "9" {
		t.Fatalf("SelectedID = %q, want 9", r.SelectedID())
	}
}

func TestApplyDetails(t *testing.T) {
	r := New([]slurm.Job{job("1")})

	if !r.ApplyDetails("1", slurm.JobDetails{StdoutPath: "/o", StderrPath: "/e"}) {
		t.Fatal("ApplyDetails returned false for tracked job")
	}
	j, _ := r.Job("1")
	if !j.HasDetails() || j.StdoutPath.Path() != "/o" || j.StderrPath.Path() != "/e" {
		t.Fatalf("job after ApplyDetails = %#v", j)
	}

	if r.ApplyDetails("404", slurm.JobDetails{}) {
		t.Fatal("ApplyDetails returned true for untracked job")
	}
}

func TestSelectionNavigation(t *testing.T) {
	r := New([]slurm.Job{job("1"), job("2"), job("3")})

	if r.SelectedID() != "1" {
		t.Fatalf("initial selection = %q, want first row", r.SelectedID())
	}

	r.SelectNext()
	if r.SelectedID() != "2" {
		t.Fatalf("after SelectNext = %q, want 2", r.SelectedID())
	}

	r.SelectLast()
	r.SelectNext()
	if r.SelectedID() != "1" {
		t.Fatalf("SelectNext should wrap, got %q", r.SelectedID())
	}

	r.SelectFirst()
	r.SelectPrev()
	if r.SelectedID() != "3" {
		t.Fatalf("SelectPrev should wrap, got %q", r.SelectedID())
	}

	r.SelectIndex(99)
	if r.SelectedID() != "3" {
		t.Fatalf("SelectIndex clamps, got %q", r.SelectedID())
	}
}
