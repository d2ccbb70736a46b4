package logtail

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// chunkSize is the backward read granularity. 8 KiB keeps the common case
// (tail window near the end of the file) to a handful of reads even over SSH.
const chunkSize = 8192

// ByteSource is a randomly addressable byte stream: a local file, or a
// remote file read over SSH byte ranges.
type ByteSource interface {
	Size() (int64, error)
	ReadAt(p []byte, off int64) (n int, err error)
}

// Result is the trailing window of a log file.
type Result struct {
	Lines []string
	// TotalLines is exact when Complete; otherwise it covers only the
	// materialized window and scanning further back refines it.
	TotalLines int
	// Complete reports whether the whole file was scanned.
	Complete bool
}

// ReadTail reads at most maxLines from the end of src, scanning backward in
// fixed-size chunks so the I/O cost depends on the window, not the file.
func ReadTail(src ByteSource, maxLines int) (Result, error) {
	if maxLines <= 0 {
		return Result{Complete: true}, nil
	}
	size, err := src.Size()
	if err != nil {
		return Result{}, fmt.Errorf("stat log: %w", err)
	}
	if size == 0 {
		return Result{Complete: true}, nil
	}

	var buf []byte
	pos := size
	newlines := 0
	for pos > 0 && newlines <= maxLines {
		n := int64(chunkSize)
		if n > pos {
			n = pos
		}
		pos -= n
		chunk := make([]byte, n)
		read, err := src.ReadAt(chunk, pos)
		if err != nil && err != io.EOF {
			return Result{}, fmt.Errorf("read log: %w", err)
		}
		if int64(read) != n {
			return Result{}, fmt.Errorf("read log: short read at offset %d", pos)
		}
		newlines += bytes.Count(chunk, []byte{'\n'})
		buf = append(chunk, buf...)
	}

	complete := pos == 0
	text := strings.TrimSuffix(string(buf), "\n")
	lines := strings.Split(text, "\n")
	if !complete && len(lines) > 0 {
		// The first element starts mid-line; it belongs to a line that was
		// not fully read.
		lines = lines[1:]
	}
	total := len(lines)
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	if !complete {
		total = len(lines)
	}
	return Result{Lines: lines, TotalLines: total, Complete: complete}, nil
}

// ReadTailFile reads the trailing window of a local file. Open and read
// failures surface as errors so the caller can render an unavailable state
// distinct from an empty file.
func ReadTailFile(path string, maxLines int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	return ReadTail(fileSource{f}, maxLines)
}

type fileSource struct {
	f *os.File
}

func (s fileSource) Size() (int64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (s fileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}
