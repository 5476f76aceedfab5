package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

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

// Service observes a directory and trims each new video file with a shared
// time window once its writes have settled. Files are processed one at a
// time, with the same per-file failure isolation as a batch run.
type Service struct {
	trimmer Trimmer
	dirs    DirMaker
	dirName string
	prefix  string
	start   float64
	end     *float64
	settle  time.Duration
	output  io.Writer
}

// NewService creates a new watch service
func NewService(trimmer Trimmer, dirs DirMaker, dirName, prefix string, start float64, end *float64, settle time.Duration, output io.Writer) *Service {
	return &Service{
		trimmer: trimmer,
		dirs:    dirs,
		dirName: dirName,
		prefix:  prefix,
		start:   start,
		end:     end,
		settle:  settle,
		output:  output,
	}
}

// Run watches dir until the context is cancelled. A file becomes eligible
// once no write event has been seen for the settle interval, so partially
// copied files are not trimmed mid-transfer.
func (s *Service) Run(ctx context.Context, dir string) error {
	outputDir := filepath.Join(dir, s.dirName)
	if err := s.dirs.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	settle := s.settle
	if settle <= 0 {
		settle = 2 * time.Second
	}

	fmt.Fprintf(s.output, "Watching %s (settle %s)\n", dir, settle)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && video.IsVideoFile(event.Name) {
				pending[event.Name] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(s.output, "watch error: %v\n", err)

		case now := <-ticker.C:
			for path, lastWrite := range pending {
				if now.Sub(lastWrite) < settle {
					continue
				}
				delete(pending, path)
				s.process(ctx, path, outputDir)
			}
		}
	}
}

func (s *Service) process(ctx context.Context, path, outputDir string) {
	filename := filepath.Base(path)
	req := &video.TrimRequest{
		InputPath:  path,
		OutputPath: filepath.Join(outputDir, s.prefix+filename),
		Start:      s.start,
		End:        s.end,
	}

	outcome, err := s.trimmer.Trim(ctx, req)
	if err != nil {
		fmt.Fprintf(s.output, "Failed: %s: %v\n", filename, err)
		return
	}
	fmt.Fprintf(s.output, "Trimmed: %s -> %s (%s)\n", filename, outcome.OutputPath, outcome.Strategy)
}
