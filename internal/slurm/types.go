package slurm

// JobState classifies a job's scheduler state. Values are the short codes
// squeue prints; long-form state names are normalized on parse.
type JobState string

const (
	StateRunning    JobState = "R"
	StatePending    JobState = "PD"
	StateCompleting JobState = "CG"
	StateCompleted  JobState = "CD"
	StateFailed     JobState = "F"
	StateCancelled  JobState = "CA"
	StateTimeout    JobState = "TO"
)

var longStateNames = map[string]JobState{
	"RUNNING":    StateRunning,
	"PENDING":    StatePending,
	"COMPLETING": StateCompleting,
	"COMPLETED":  StateCompleted,
	"FAILED":     StateFailed,
	"CANCELLED":  StateCancelled,
	"TIMEOUT":    StateTimeout,
}

// ParseJobState normalizes a squeue state field. Unrecognized states are
// carried through verbatim rather than dropped.
func ParseJobState(s string) JobState {
	if long, ok := longStateNames[s]; ok {
		return long
	}
	return JobState(s)
}

// Long returns the long-form state name, or the raw code when unknown.
func (s JobState) Long() string {
	for name, code := range longStateNames {
		if code == s {
			return name
		}
	}
	return string(s)
}

// OptionalPath is a lazily fetched path field. It starts unknown and becomes
// resolved once a detail fetch supplies a value; a resolved value may be
// empty when the scheduler recorded no output file.
type OptionalPath struct {
	path  string
	known bool
}

// ResolvedPath wraps a fetched path value.
func ResolvedPath(p string) OptionalPath {
	return OptionalPath{path: p, known: true}
}

// Known reports whether the field has been fetched.
func (o OptionalPath) Known() bool { return o.known }

// Path returns the fetched value, or "" when still unknown.
func (o OptionalPath) Path() string { return o.path }

// Job is one squeue row plus detail fields fetched lazily via scontrol.
type Job struct {
	ID        string
	Partition string
	Name      string
	User      string
	State     JobState
	Elapsed   string
	NodeCount string
	NodeList  string
	TRES      string
	Command   string
	WorkDir   string

	// Populated by FetchJobDetails for the selected job only.
	StdoutPath OptionalPath
	StderrPath OptionalPath
}

// HasDetails reports whether both output paths have been fetched.
func (j Job) HasDetails() bool {
	return j.StdoutPath.Known() && j.StderrPath.Known()
}

// JobDetails is the result of one scontrol query.
type JobDetails struct {
	StdoutPath string
	StderrPath string
}
