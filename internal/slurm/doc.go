// Package slurm shells out to the Slurm command line tools and parses
// their output.
//
// # Data Sources
//
// Two commands back the Source interface:
//
//   - squeue lists the queue. It runs with a fixed pipe-delimited format
//     string, one job per line, no header. Malformed lines are skipped so
//     one odd job name cannot blank the whole queue.
//   - scontrol show job fetches the StdOut and StdErr paths for a single
//     job. It is slow enough that the UI only calls it for the selected
//     job, once, and caches the result.
//
// # Optional Fields
//
// The output paths are modeled as OptionalPath rather than plain strings
// because "not fetched yet" and "fetched, and the scheduler recorded no
// file" need different handling downstream. The zero value is unfetched.
//
// # Non-goals
//
// No slurmrestd client and no job control. Everything here is read-only
// and works on any cluster where the standard CLI tools are in PATH.
package slurm
