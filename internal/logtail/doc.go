// Package logtail reads the last N lines of a log file without loading the
// whole file.
//
// # Overview
//
// Job logs can reach many gigabytes while the UI only ever shows a window
// of the newest lines. ReadTail therefore scans the file backward in fixed
// 8 KiB chunks from the end, stopping as soon as enough newlines have been
// seen. I/O and memory are proportional to the requested window, not to
// the file size.
//
// # Byte Sources
//
// ReadTail works against the small ByteSource interface (Size plus ReadAt)
// so the same scan serves local files and remote files read over SSH:
//
//	res, err := logtail.ReadTailFile("/scratch/job.out", 1000)
//
//	src := remote.NewRangeReader(sshClient, "node03", "/scratch/job.out")
//	res, err := logtail.ReadTail(src, 1000)
//
// # Line Accounting
//
// When the backward scan reaches the start of the file the result is
// Complete and TotalLines is the exact line count. When the scan stops
// early the first partially-read line is dropped, Complete is false, and
// TotalLines counts only the returned window. A file without a trailing
// newline still counts its final partial line.
//
// # Error Handling
//
// A file that cannot be opened or read returns a wrapped error; this is
// distinct from an existing empty file, which returns an empty Complete
// result. Callers present the two cases differently.
package logtail
