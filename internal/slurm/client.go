package slurm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Source defines the scheduler queries the UI depends on. Implemented by
// *Client; tests substitute fakes.
type Source interface {
	ListJobs(ctx context.Context) ([]Job, error)
	FetchJobDetails(ctx context.Context, jobID string) (JobDetails, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// squeue format: JobID|Partition|Name|User|State|Time|NumNodes|NodeList|TRES|Command|WorkDir
const squeueFormat = "%i|%P|%j|%u|%T|%M|%D|%R|%b|%o|%Z"

const squeueFieldCount = 11

// Client shells out to the Slurm command-line tools.
type Client struct {
	allUsers   bool
	squeueArgs []string
	log        *zap.Logger
}

// Options configure a Client.
type Options struct {
	AllUsers   bool
	SqueueArgs []string
	Logger     *zap.Logger
}

// NewClient builds a Client.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		allUsers:   opts.AllUsers,
		squeueArgs: opts.SqueueArgs,
		log:        logger,
	}
}

// ListJobs runs one squeue poll and returns the parsed snapshot. Detail
// fields (stdout/stderr paths) are not populated here; they come from
// FetchJobDetails on demand.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	args := []string{"--noheader", "--format", squeueFormat}
	if !c.allUsers {
		if user := os.Getenv("USER"); user != "" {
			args = append(args, "--user", user)
		}
	}
	args = append(args, c.squeueArgs...)

	out, err := exec.CommandContext(ctx, "squeue", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("run squeue: %w", err)
	}
	jobs := ParseJobs(string(out))
	c.log.Debug("squeue poll", zap.Int("jobs", len(jobs)))
	return jobs, nil
}

// ParseJobs parses pipe-delimited squeue output. Malformed lines are
// skipped, not fatal.
func ParseJobs(out string) []Job {
	var jobs []Job
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < squeueFieldCount {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		jobs = append(jobs, Job{
			ID:        fields[0],
			Partition: fields[1],
			Name:      fields[2],
			User:      fields[3],
			State:     ParseJobState(fields[4]),
			Elapsed:   fields[5],
			NodeCount: fields[6],
			NodeList:  fields[7],
			TRES:      fields[8],
			Command:   fields[9],
			WorkDir:   fields[10],
		})
	}
	return jobs
}

// FetchJobDetails runs one scontrol query for a job's output paths. A path
// the scheduler never recorded comes back empty, which still counts as
// fetched so the job is not queried again every refresh.
func (c *Client) FetchJobDetails(ctx context.Context, jobID string) (JobDetails, error) {
	out, err := exec.CommandContext(ctx, "scontrol", "show", "job", jobID).Output()
	if err != nil {
		return JobDetails{}, fmt.Errorf("run scontrol for job %s: %w", jobID, err)
	}
	details := ParseJobDetails(string(out))
	c.log.Debug("scontrol detail fetch",
		zap.String("job", jobID),
		zap.String("stdout", details.StdoutPath),
		zap.String("stderr", details.StderrPath))
	return details, nil
}

// ParseJobDetails extracts StdOut= and StdErr= from scontrol show output.
func ParseJobDetails(out string) JobDetails {
	var d JobDetails
	for _, segment := range strings.Fields(out) {
		if val, ok := strings.CutPrefix(segment, "StdErr="); ok {
			d.StderrPath = val
		} else if val, ok := strings.CutPrefix(segment, "StdOut="); ok {
			d.StdoutPath = val
		}
	}
	return d
}
