package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"video-trimmer/domain/video"
)

// Cutter implements video.Cutter using ffmpeg
type Cutter struct {
	ffmpegPath string
	runner     CommandRunner
}

// CutterOption is a functional option for configuring Cutter
type CutterOption func(*Cutter)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) CutterOption {
	return func(c *Cutter) {
		c.ffmpegPath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) CutterOption {
	return func(c *Cutter) {
		c.runner = runner
	}
}

// NewCutter creates a new ffmpeg-based cutter
func NewCutter(opts ...CutterOption) *Cutter {
	c := &Cutter{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Cut implements video.Cutter. An engine rejection is returned as a
// *video.CutError with the run's stderr attached.
func (c *Cutter) Cut(ctx context.Context, inputPath, outputPath string, win video.Window, strategy video.Strategy) error {
	args := cutArgs(inputPath, outputPath, win, strategy)

	stderr, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		return &video.CutError{
			Strategy: strategy,
			Stderr:   stderr,
			Err:      err,
		}
	}

	return nil
}

// cutArgs builds the ffmpeg argument list for one cut. Seeking is done on
// the input side; copy mode adds -avoid_negative_ts so timestamps do not go
// negative after the seek.
func cutArgs(inputPath, outputPath string, win video.Window, strategy video.Strategy) []string {
	args := []string{
		"-ss", formatSeconds(win.Start),
		"-to", formatSeconds(win.End),
		"-i", inputPath,
	}

	if strategy == video.StrategyCopy {
		args = append(args,
			"-c", "copy",
			"-avoid_negative_ts", "make_zero",
		)
	}

	return append(args,
		"-y", // Overwrite output file if it exists
		outputPath,
	)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// VerifyInstalled checks that ffmpeg is available
func (c *Cutter) VerifyInstalled(ctx context.Context) error {
	_, err := c.runner.Output(ctx, c.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}

// Ensure Cutter implements video.Cutter
var _ video.Cutter = (*Cutter)(nil)
