// Package logpath turns scheduler-reported log paths into locations the
// viewer can actually read. The scheduler records paths from the execution
// host's point of view; on clusters with node-local scratch filesystems the
// path is often invisible from the viewing host, so a configured prefix
// rewrite is tried first and an SSH fallback to the job's node last.
package logpath

import (
	"fmt"
	"os"
	"strings"
)

// Kind tags the outcome of a resolution attempt.
type Kind int

const (
	Unresolvable Kind = iota
	Local
	Remote
)

// Location is the transient result of resolving one path. It is recomputed
// for every log read and never cached across refreshes.
type Location struct {
	Kind Kind
	Path string // rewritten path for Local, the original node-local path for Remote
	Host string // set for Remote
	Err  error  // set for Unresolvable
}

// Mapping rewrites one path prefix to another, e.g. a node-local scratch
// mount to its NFS export.
type Mapping struct {
	Prefix      string
	Replacement string
}

// RemoteProber checks whether a path is readable on a remote host.
type RemoteProber interface {
	Readable(host, path string) error
}

// Resolver applies the resolution strategy chain: prefix rewrite, local
// read check, remote fallback. First success wins.
type Resolver struct {
	Mappings      []Mapping
	RemoteEnabled bool
	Remote        RemoteProber

	// localProbe is swapped out by tests.
	localProbe func(path string) error
}

// NewResolver builds a Resolver. remote may be nil when remote access is
// disabled.
func NewResolver(mappings []Mapping, remoteEnabled bool, remote RemoteProber) *Resolver {
	return &Resolver{
		Mappings:      mappings,
		RemoteEnabled: remoteEnabled && remote != nil,
		Remote:        remote,
	}
}

// RewritePath applies the longest matching prefix mapping as an exact string
// substitution. Paths with no matching prefix pass through unchanged.
func RewritePath(path string, mappings []Mapping) string {
	best := -1
	bestLen := 0
	for i, m := range mappings {
		if m.Prefix == "" {
			continue
		}
		if strings.HasPrefix(path, m.Prefix) && len(m.Prefix) > bestLen {
			best = i
			bestLen = len(m.Prefix)
		}
	}
	if best < 0 {
		return path
	}
	return mappings[best].Replacement + path[bestLen:]
}

// Resolve runs the strategy chain for one path. hostHint is the node that
// ran the job, used for the remote fallback; squeue reports "(None)" for
// jobs without an allocation.
func (r *Resolver) Resolve(rawPath, hostHint string) Location {
	if rawPath == "" {
		return Location{Kind: Unresolvable, Err: fmt.Errorf("no log path recorded")}
	}

	candidate := RewritePath(rawPath, r.Mappings)
	if err := r.probeLocal(candidate); err == nil {
		return Location{Kind: Local, Path: candidate}
	}

	if r.RemoteEnabled && usableHost(hostHint) {
		if err := r.Remote.Readable(hostHint, rawPath); err == nil {
			return Location{Kind: Remote, Path: rawPath, Host: hostHint}
		}
	}

	return Location{
		Kind: Unresolvable,
		Path: candidate,
		Err:  fmt.Errorf("%s not accessible locally or via ssh", rawPath),
	}
}

func (r *Resolver) probeLocal(path string) error {
	probe := r.localProbe
	if probe == nil {
		probe = defaultLocalProbe
	}
	return probe(path)
}

// defaultLocalProbe checks readability, not just existence: a file owned by
// another user may be listed but not openable.
func defaultLocalProbe(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func usableHost(host string) bool {
	return host != "" && host != "(None)"
}
