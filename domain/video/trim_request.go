package video

import "fmt"

// TrimRequest represents a request to cut one time window out of one file.
// A nil End means "to the end of the source"; it is resolved by probing the
// source duration before any cut is attempted.
type TrimRequest struct {
	InputPath  string
	OutputPath string
	Start      float64
	End        *float64
}

// Window is a resolved [Start, End) cut window in seconds.
type Window struct {
	Start float64
	End   float64
}

// Validate checks the window invariant: a non-negative start and an end
// strictly after it. Violations are reported as ErrInvalidRange so callers
// can reject the request before invoking the engine.
func (w Window) Validate() error {
	if w.Start < 0 {
		return fmt.Errorf("%w: start time %.3f cannot be negative", ErrInvalidRange, w.Start)
	}
	if w.End <= w.Start {
		return fmt.Errorf("%w: end time %.3f must be greater than start time %.3f", ErrInvalidRange, w.End, w.Start)
	}
	return nil
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 {
	return w.End - w.Start
}
