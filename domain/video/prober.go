package video

import "context"

// Prober defines the interface for read-only media inspection.
// This is a port that can be implemented by different infrastructure adapters.
type Prober interface {
	// Probe extracts container and stream metadata from the file at path.
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}
