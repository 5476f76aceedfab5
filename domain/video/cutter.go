package video

import "context"

// Cutter defines the interface for a single engine cut invocation.
// This is a port that can be implemented by different infrastructure adapters.
type Cutter interface {
	// Cut writes the [win.Start, win.End) window of inputPath to outputPath
	// using the given strategy, overwriting any existing file. A rejection by
	// the engine is reported as a *CutError carrying its diagnostic output.
	Cut(ctx context.Context, inputPath, outputPath string, win Window, strategy Strategy) error
}

// FileChecker defines the interface for checking that a path is a regular
// file. It is used to validate inputs before any engine invocation.
type FileChecker interface {
	// Exists returns true if the path exists and is a regular file
	Exists(path string) bool
}
