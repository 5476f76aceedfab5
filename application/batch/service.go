package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"video-trimmer/domain/video"
)

// Trimmer is the seam to the single-file trim operation
type Trimmer interface {
	Trim(ctx context.Context, req *video.TrimRequest) (*video.TrimOutcome, error)
}

// DirMaker abstracts destination directory creation
type DirMaker interface {
	EnsureDir(path string) error
}

// ProgressFunc is invoked synchronously after each file, before the next one
// is processed. It is the sole extensibility point for progress UI. Exactly
// one of outcome and err is set.
type ProgressFunc func(index, total int, filename string, outcome *video.TrimOutcome, err error)

// FileResult is the recorded outcome for one input file
type FileResult struct {
	InputPath string
	Outcome   *video.TrimOutcome // nil when Err is set
	Err       error
}

// Succeeded reports whether the file was trimmed
func (r FileResult) Succeeded() bool {
	return r.Err == nil
}

// Summary enumerates every input's outcome in original order, with aggregate
// counts and the resolved output directory.
type Summary struct {
	OutputDir string
	Results   []FileResult
	Succeeded int
	Failed    int
}

// Service orchestrates trimming a batch of files sharing one time window
type Service struct {
	trimmer Trimmer
	dirs    DirMaker
	dirName string
	prefix  string
}

// NewService creates a new batch service. dirName is the destination
// subfolder created next to the first input; prefix is prepended to each
// output filename.
func NewService(trimmer Trimmer, dirs DirMaker, dirName, prefix string) *Service {
	return &Service{
		trimmer: trimmer,
		dirs:    dirs,
		dirName: dirName,
		prefix:  prefix,
	}
}

// Run trims every input in list order with the shared [start, end) window.
// A failure on one file is recorded and never stops the processing of
// subsequent files; the only batch-level failure is an inability to create
// the destination directory.
func (s *Service) Run(ctx context.Context, inputs []string, start float64, end *float64, onProgress ProgressFunc) (*Summary, error) {
	if len(inputs) == 0 {
		return nil, errors.New("at least one input file is required")
	}

	outputDir := filepath.Join(filepath.Dir(inputs[0]), s.dirName)
	if err := s.dirs.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	summary := &Summary{
		OutputDir: outputDir,
		Results:   make([]FileResult, 0, len(inputs)),
	}

	total := len(inputs)
	for i, input := range inputs {
		filename := filepath.Base(input)
		req := &video.TrimRequest{
			InputPath:  input,
			OutputPath: filepath.Join(outputDir, s.prefix+filename),
			Start:      start,
			End:        end,
		}

		outcome, err := s.trimmer.Trim(ctx, req)
		if err != nil {
			summary.Results = append(summary.Results, FileResult{InputPath: input, Err: err})
			summary.Failed++
		} else {
			summary.Results = append(summary.Results, FileResult{InputPath: input, Outcome: outcome})
			summary.Succeeded++
		}

		if onProgress != nil {
			onProgress(i, total, filename, outcome, err)
		}
	}

	return summary, nil
}
