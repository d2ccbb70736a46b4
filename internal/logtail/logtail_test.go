package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// countingSource records how many bytes ReadTail actually pulls.
type countingSource struct {
	data      []byte
	bytesRead int
}

func (s *countingSource) Size() (int64, error) { return int64(len(s.data)), nil }

func (s *countingSource) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, s.data[off:])
	s.bytesRead += n
	return n, nil
}

func writeLines(t *testing.T, count int) (string, []string) {
	t.Helper()
	var content strings.Builder
	lines := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		line := fmt.Sprintf("line %06d", i)
		content.WriteString(line + "\n")
		lines = append(lines, line)
	}
	path := filepath.Join(t.TempDir(), "job.out")
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, lines
}

func TestReadTailFile_LastWindowInOrder(t *testing.T) {
	path, all := writeLines(t, 10000)

	res, err := ReadTailFile(path, 500)
	if err != nil {
		t.Fatalf("ReadTailFile: %v", err)
	}
	if len(res.Lines) != 500 {
		t.Fatalf("got %d lines, want 500", len(res.Lines))
	}
	want := all[len(all)-500:]
	for i := range want {
		if res.Lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, res.Lines[i], want[i])
		}
	}
	if res.Complete {
		t.Fatal("Complete = true for a partial scan of a 10000-line file")
	}
	if res.TotalLines != 500 {
		t.Fatalf("TotalLines = %d, want window size 500 for partial scan", res.TotalLines)
	}
}

func TestReadTail_BytesReadBoundedByWindow(t *testing.T) {
	// 100k lines of 11 bytes each; only the trailing window may be touched.
	var b strings.Builder
	for i := 0; i < 100000; i++ {
		fmt.Fprintf(&b, "line %05d\n", i%100000)
	}
	src := &countingSource{data: []byte(b.String())}

	res, err := ReadTail(src, 500)
	if err != nil {
		t.Fatalf("ReadTail: %v", err)
	}
	if len(res.Lines) != 500 {
		t.Fatalf("got %d lines, want 500", len(res.Lines))
	}

	// 500 lines ≈ 5.5 KB; one extra chunk of slack for the boundary scan.
	limit := 500*11 + 2*chunkSize
	if src.bytesRead > limit {
		t.Fatalf("bytesRead = %d, want <= %d (independent of %d-byte file)",
			src.bytesRead, limit, len(src.data))
	}
}

func TestReadTail_SmallFileExactTotal(t *testing.T) {
	path, all := writeLines(t, 10)

	res, err := ReadTailFile(path, 500)
	if err != nil {
		t.Fatalf("ReadTailFile: %v", err)
	}
	if !res.Complete {
		t.Fatal("Complete = false for a fully scanned file")
	}
	if res.TotalLines != 10 {
		t.Fatalf("TotalLines = %d, want 10", res.TotalLines)
	}
	if len(res.Lines) != 10 || res.Lines[0] != all[0] || res.Lines[9] != all[9] {
		t.Fatalf("Lines = %v", res.Lines)
	}
}

func TestReadTail_NoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.out")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	res, err := ReadTailFile(path, 2)
	if err != nil {
		t.Fatalf("ReadTailFile: %v", err)
	}
	if len(res.Lines) != 2 || res.Lines[0] != "beta" || res.Lines[1] != "gamma" {
		t.Fatalf("Lines = %v, want [beta gamma]", res.Lines)
	}
	if res.TotalLines != 3 {
		t.Fatalf("TotalLines = %d, want 3", res.TotalLines)
	}
}

func TestReadTail_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.out")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	res, err := ReadTailFile(path, 100)
	if err != nil {
		t.Fatalf("ReadTailFile on empty file: %v", err)
	}
	if len(res.Lines) != 0 || res.TotalLines != 0 || !res.Complete {
		t.Fatalf("Result = %#v, want empty complete result", res)
	}
}

func TestReadTailFile_MissingFileErrors(t *testing.T) {
	_, err := ReadTailFile(filepath.Join(t.TempDir(), "gone.out"), 100)
	if err == nil {
		t.Fatal("ReadTailFile returned nil error for a missing file")
	}
	if !strings.Contains(err.Error(), "open log") {
		t.Fatalf("error = %q, want it wrapped as open log", err)
	}
}

func TestReadTail_ZeroMaxLines(t *testing.T) {
	src := &countingSource{data: []byte("a\nb\n")}
	res, err := ReadTail(src, 0)
	if err != nil {
		t.Fatalf("ReadTail: %v", err)
	}
	if len(res.Lines) != 0 || src.bytesRead != 0 {
		t.Fatalf("Result = %#v bytesRead = %d, want no work", res, src.bytesRead)
	}
}
