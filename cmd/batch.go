package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appbatch "video-trimmer/application/batch"
	apptrim "video-trimmer/application/trim"
	"video-trimmer/domain/video"
	"video-trimmer/infrastructure/ffmpeg"
	"video-trimmer/infrastructure/filesystem"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// verifyTimeout bounds the pre-flight ffmpeg -version check
const verifyTimeout = 5 * time.Second

var (
	batchStartTime string
	batchEndTime   string
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Trim several videos with one shared time window",
	Long: `Trim every listed file to the same [start, end) window. Outputs land in
a "trimmed_videos" folder beside the first input, each named with a
"trimmed_" prefix (both configurable). A failure on one file never stops the
rest of the batch.

Example:
  video-trimmer batch a.mp4 b.mp4 c.mp4 --start 10 --end 00:01:00`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchStartTime, "start", "0", "Start position (seconds or [HH:]MM:SS)")
	batchCmd.Flags().StringVar(&batchEndTime, "end", "", "End position (seconds or [HH:]MM:SS); omit to trim to each source's end")
}

func runBatch(cmd *cobra.Command, args []string) error {
	c := GetConfig()

	cutter := ffmpeg.NewCutter(ffmpeg.WithFFmpegPath(c.Engine.FFmpegPath))
	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(c.Engine.FFprobePath))
	checker := filesystem.NewChecker()

	if err := verifyEngine(cmd.Context(), cutter); err != nil {
		return err
	}

	trimService := apptrim.NewService(cutter, prober, checker)
	batchService := appbatch.NewService(trimService, checker, c.Output.DirectoryName, c.Output.FilenamePrefix)

	return RunBatchWithDependencies(cmd.Context(), batchService, args, batchStartTime, batchEndTime, os.Stdout)
}

// RunBatchWithDependencies runs the batch command with an injected service (for testing)
func RunBatchWithDependencies(
	ctx context.Context,
	service *appbatch.Service,
	inputs []string,
	startTime string,
	endTime string,
	output io.Writer,
) error {
	start, end, err := parseWindowFlags(startTime, endTime)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription("trimming"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(output) }),
	)

	onProgress := func(index, total int, filename string, outcome *video.TrimOutcome, err error) {
		bar.Add(1)
	}

	summary, err := service.Run(ctx, inputs, start, end, onProgress)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Done: %d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	fmt.Fprintf(output, "Output directory: %s\n", summary.OutputDir)

	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Fprintf(output, "  failed %s: %v\n", filepath.Base(res.InputPath), res.Err)
		}
	}

	if summary.Succeeded == 0 {
		return fmt.Errorf("all %d files failed", summary.Failed)
	}
	return nil
}

// verifyEngine checks the ffmpeg binary before starting a long batch
func verifyEngine(ctx context.Context, cutter *ffmpeg.Cutter) error {
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := cutter.VerifyInstalled(verifyCtx); err != nil {
		return fmt.Errorf("engine verification failed: %w", err)
	}
	return nil
}
