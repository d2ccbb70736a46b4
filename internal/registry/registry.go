// Package registry holds the in-memory job table and reconciles it against
// fresh scheduler snapshots without losing lazily fetched per-job detail.
package registry

import (
	"github.com/mkonda/sqtui/internal/slurm"
)

// Registry is the authoritative job table. It is a single-writer structure:
// only the UI update loop mutates it.
type Registry struct {
	jobs       []slurm.Job
	index      map[string]int
	selectedID string
}

// New builds a Registry seeded with an initial snapshot.
func New(jobs []slurm.Job) *Registry {
	r := &Registry{}
	r.replace(jobs)
	if len(r.jobs) > 0 {
		r.selectedID = r.jobs[0].ID
	}
	return r
}

func (r *Registry) replace(jobs []slurm.Job) {
	r.jobs = jobs
	r.index = make(map[string]int, len(jobs))
	for i, j := range jobs {
		r.index[j.ID] = i
	}
}

// Jobs returns the job table in snapshot order.
func (r *Registry) Jobs() []slurm.Job { return r.jobs }

// Len returns the number of tracked jobs.
func (r *Registry) Len() int { return len(r.jobs) }

// Job looks up a job by id.
func (r *Registry) Job(id string) (slurm.Job, bool) {
	i, ok := r.index[id]
	if !ok {
		return slurm.Job{}, false
	}
	return r.jobs[i], true
}

// SelectedID returns the selected job id, or "" when nothing is selected.
func (r *Registry) SelectedID() string { return r.selectedID }

// Selected returns the selected job.
func (r *Registry) Selected() (slurm.Job, bool) {
	if r.selectedID == "" {
		return slurm.Job{}, false
	}
	return r.Job(r.selectedID)
}

// SelectedIndex returns the selected row position, or -1.
func (r *Registry) SelectedIndex() int {
	if r.selectedID == "" {
		return -1
	}
	if i, ok := r.index[r.selectedID]; ok {
		return i
	}
	return -1
}

// Reconcile merges a fresh snapshot into the table. For every job present in
// both, the previously fetched stdout/stderr paths are carried forward onto
// the fresh record; every other field takes the fresh value. Jobs absent
// from the snapshot are dropped along with their cached detail.
//
// Selection policy: the selected id is kept when it survives the snapshot.
// When it disappears, selection moves to the job now occupying the prior
// row position, clamped to the last row; an empty snapshot clears it.
func (r *Registry) Reconcile(fresh []slurm.Job) {
	for i := range fresh {
		if oldIdx, ok := r.index[fresh[i].ID]; ok {
			old := r.jobs[oldIdx]
			if old.StdoutPath.Known() && !fresh[i].StdoutPath.Known() {
				fresh[i].StdoutPath = old.StdoutPath
			}
			if old.StderrPath.Known() && !fresh[i].StderrPath.Known() {
				fresh[i].StderrPath = old.StderrPath
			}
		}
	}

	priorIdx := r.SelectedIndex()
	r.replace(fresh)

	if r.selectedID != "" {
		if _, ok := r.index[r.selectedID]; ok {
			return
		}
	}
	switch {
	case len(r.jobs) == 0:
		r.selectedID = ""
	case priorIdx < 0:
		r.selectedID = r.jobs[0].ID
	default:
		if priorIdx >= len(r.jobs) {
			priorIdx = len(r.jobs) - 1
		}
		r.selectedID = r.jobs[priorIdx].ID
	}
}

// ApplyDetails records fetched output paths for a job. Returns false when
// the job is no longer tracked.
func (r *Registry) ApplyDetails(id string, d slurm.JobDetails) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.jobs[i].StdoutPath = slurm.ResolvedPath(d.StdoutPath)
	r.jobs[i].StderrPath = slurm.ResolvedPath(d.StderrPath)
	return true
}

// Select sets the selection to the given id if tracked.
func (r *Registry) Select(id string) {
	if _, ok := r.index[id]; ok {
		r.selectedID = id
	}
}

// SelectIndex sets the selection by row position, clamped to the table.
func (r *Registry) SelectIndex(i int) {
	if len(r.jobs) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(r.jobs) {
		i = len(r.jobs) - 1
	}
	r.selectedID = r.jobs[i].ID
}

// SelectNext moves the selection down one row, wrapping at the end.
func (r *Registry) SelectNext() {
	if len(r.jobs) == 0 {
		return
	}
	i := r.SelectedIndex()
	if i < 0 || i >= len(r.jobs)-1 {
		r.selectedID = r.jobs[0].ID
		return
	}
	r.selectedID = r.jobs[i+1].ID
}

// SelectPrev moves the selection up one row, wrapping at the top.
func (r *Registry) SelectPrev() {
	if len(r.jobs) == 0 {
		return
	}
	i := r.SelectedIndex()
	if i <= 0 {
		r.selectedID = r.jobs[len(r.jobs)-1].ID
		return
	}
	r.selectedID = r.jobs[i-1].ID
}

// SelectFirst selects the first row.
func (r *Registry) SelectFirst() {
	if len(r.jobs) > 0 {
		r.selectedID = r.jobs[0].ID
	}
}

// SelectLast selects the last row.
func (r *Registry) SelectLast() {
	if len(r.jobs) > 0 {
		r.selectedID = r.jobs[len(r.jobs)-1].ID
	}
}
