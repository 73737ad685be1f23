package snapshot

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// countingWriter tracks how many bytes pass through to the underlying
// writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteCompressed serializes the snapshot as JSON with one-space indent,
// gzips it at maximum compression, and writes it to path. Returns the
// compressed size in bytes.
func WriteCompressed(path string, snap *Snapshot) (int64, error) {
	data, err := json.MarshalIndent(snap, "", " ")
	if err != nil {
		return 0, eris.Wrap(err, "snapshot: marshal")
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck

	cw := &countingWriter{w: f}
	gz, err := gzip.NewWriterLevel(cw, gzip.BestCompression)
	if err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	if _, err := gz.Write(data); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := gz.Close(); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}

	return cw.n, nil
}

// WriteRaw persists the exact response bytes, unmodified. Returns the
// number of bytes written.
func WriteRaw(path string, raw []byte) (int64, error) {
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	return int64(len(raw)), nil
}
