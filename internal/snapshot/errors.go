package snapshot

import "fmt"

// EmptyDatasetError reports a structurally valid response that carried
// zero elements. This is distinct from a parse failure: an empty result
// usually means a malformed query or a server-side rejection, not a
// genuine "no data" answer. Remark, when set, carries the server's
// human-readable rejection reason.
type EmptyDatasetError struct {
	Remark string
}

func (e *EmptyDatasetError) Error() string {
	if e.Remark != "" {
		return fmt.Sprintf("snapshot: dataset is empty: %s", e.Remark)
	}
	return "snapshot: dataset is empty"
}

// ClockError reports an unusable system clock reading. Not expected to
// occur in practice, but fatal if it does.
type ClockError struct {
	Reading int64
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("snapshot: system clock returned pre-epoch time %d", e.Reading)
}

// WriteError wraps a local file write failure.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("snapshot: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
