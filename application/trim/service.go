package trim

import (
	"context"
	"errors"
	"fmt"

	"video-trimmer/domain/video"
)

// Service coordinates a single trim: validation, end-time resolution, and
// the two-stage stream-copy / re-encode strategy.
type Service struct {
	cutter      video.Cutter
	prober      video.Prober
	fileChecker video.FileChecker
}

// NewService creates a new trim service
func NewService(cutter video.Cutter, prober video.Prober, fileChecker video.FileChecker) *Service {
	return &Service{
		cutter:      cutter,
		prober:      prober,
		fileChecker: fileChecker,
	}
}

// Trim cuts the request's window out of its input file. Validation happens
// before any engine invocation: the input must be a regular file, a nil end
// is resolved to the probed source duration, and the resolved window must
// satisfy start >= 0 and end > start.
//
// Execution tries a stream copy first. Only a rejection by the engine, never
// a validation failure, triggers the single re-encode fallback; when that
// also fails the returned *video.EngineError carries the diagnostics of both
// attempts.
func (s *Service) Trim(ctx context.Context, req *video.TrimRequest) (*video.TrimOutcome, error) {
	if !s.fileChecker.Exists(req.InputPath) {
		return nil, fmt.Errorf("%w: %s", video.ErrFileNotFound, req.InputPath)
	}

	end, err := s.resolveEnd(ctx, req)
	if err != nil {
		return nil, err
	}

	win := video.Window{Start: req.Start, End: end}
	if err := win.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: stream copy
	err = s.cutter.Cut(ctx, req.InputPath, req.OutputPath, win, video.StrategyCopy)
	if err == nil {
		return &video.TrimOutcome{OutputPath: req.OutputPath, Strategy: video.StrategyCopy}, nil
	}

	var copyErr *video.CutError
	if !errors.As(err, &copyErr) {
		return nil, err
	}

	// Stage 2: re-encode fallback over the same window
	err = s.cutter.Cut(ctx, req.InputPath, req.OutputPath, win, video.StrategyReencode)
	if err == nil {
		return &video.TrimOutcome{OutputPath: req.OutputPath, Strategy: video.StrategyReencode}, nil
	}

	var reencodeErr *video.CutError
	if errors.As(err, &reencodeErr) {
		return nil, &video.EngineError{
			CopyStderr:     copyErr.Stderr,
			ReencodeStderr: reencodeErr.Stderr,
			Err:            reencodeErr.Err,
		}
	}
	return nil, err
}

func (s *Service) resolveEnd(ctx context.Context, req *video.TrimRequest) (float64, error) {
	if req.End != nil {
		return *req.End, nil
	}

	info, err := s.prober.Probe(ctx, req.InputPath)
	if err != nil {
		return 0, fmt.Errorf("resolving end time: %w", err)
	}
	return info.DurationSeconds, nil
}
