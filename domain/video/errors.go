package video

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the input path is not a regular file
	ErrFileNotFound = errors.New("input file not found")

	// ErrInvalidRange is returned for a negative start or an end at or before the start
	ErrInvalidRange = errors.New("invalid trim range")

	// ErrProbeFailed is returned when a file yields no parseable media metadata
	ErrProbeFailed = errors.New("could not read media metadata")
)

// CutError reports a single rejected engine invocation. The cutter returns it
// so callers can distinguish an engine rejection (recoverable by falling back
// to re-encoding) from validation or infrastructure failures.
type CutError struct {
	Strategy Strategy
	Stderr   string
	Err      error
}

func (e *CutError) Error() string {
	return fmt.Sprintf("engine %s cut failed: %v", e.Strategy, e.Err)
}

func (e *CutError) Unwrap() error {
	return e.Err
}

// EngineError is the terminal trim failure: both the stream-copy attempt and
// the re-encode fallback were rejected. It carries the diagnostic output of
// both attempts.
type EngineError struct {
	CopyStderr     string
	ReencodeStderr string
	Err            error
}

func (e *EngineError) Error() string {
	if e.ReencodeStderr != "" {
		return fmt.Sprintf("trim failed after re-encode fallback: %v: %s", e.Err, e.ReencodeStderr)
	}
	return fmt.Sprintf("trim failed after re-encode fallback: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
