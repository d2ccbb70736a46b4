package remote

import "io"

// FileReader is the subset of Client used by RangeReader. Tests substitute
// a fake.
type FileReader interface {
	FileSize(host, path string) (int64, error)
	ReadRange(host, path string, offset, length int64) ([]byte, error)
}

// RangeReader exposes a remote file as a random-access byte source.
// The size is fetched once on first use so a tail read sees a consistent
// snapshot even while the job keeps appending.
type RangeReader struct {
	client FileReader
	host   string
	path   string

	size      int64
	sizeKnown bool
}

// NewRangeReader wraps one file on one host.
func NewRangeReader(client FileReader, host, path string) *RangeReader {
	return &RangeReader{client: client, host: host, path: path}
}

// Size returns the remote file size in bytes, cached after the first call.
func (r *RangeReader) Size() (int64, error) {
	if r.sizeKnown {
		return r.size, nil
	}
	size, err := r.client.FileSize(r.host, r.path)
	if err != nil {
		return 0, err
	}
	r.size = size
	r.sizeKnown = true
	return size, nil
}

// ReadAt reads len(p) bytes starting at off.
func (r *RangeReader) ReadAt(p []byte, off int64) (int, error) {
	data, err := r.client.ReadRange(r.host, r.path, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}
