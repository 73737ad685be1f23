package overpass

import "fmt"

// TransportError wraps a connection-level failure (dial, TLS, timeout,
// truncated body). It is terminal; the pipeline does not retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("overpass: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-2xx status from the Overpass endpoint.
type RemoteError struct {
	Status int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("overpass: remote returned status %d", e.Status)
}

// ParseError reports a response body that is not well-formed JSON or
// does not match the expected Overpass shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("overpass: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
