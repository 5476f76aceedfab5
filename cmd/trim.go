package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apptrim "video-trimmer/application/trim"
	"video-trimmer/domain/video"
	"video-trimmer/infrastructure/ffmpeg"
	"video-trimmer/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	trimInputPath  string
	trimOutputPath string
	trimStartTime  string
	trimEndTime    string
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim one video to a [start, end) window",
	Long: `Trim a video file to the given start and end positions.

Times are given as plain seconds ("90.5") or as clock positions
("00:01:30.5"). Omitting --end trims to the end of the source. The cut is
done losslessly by stream copy when the container allows it, falling back to
a full re-encode otherwise.

Example:
  video-trimmer trim --input recording.mp4 --start 00:05:30 --end 01:45:00`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimInputPath, "input", "", "Path to source video file (required)")
	trimCmd.Flags().StringVar(&trimOutputPath, "output", "", "Path for the trimmed file (default: prefixed name beside the input)")
	trimCmd.Flags().StringVar(&trimStartTime, "start", "0", "Start position (seconds or [HH:]MM:SS)")
	trimCmd.Flags().StringVar(&trimEndTime, "end", "", "End position (seconds or [HH:]MM:SS); omit to trim to the end")
	trimCmd.MarkFlagRequired("input")
}

func runTrim(cmd *cobra.Command, args []string) error {
	c := GetConfig()

	cutter := ffmpeg.NewCutter(ffmpeg.WithFFmpegPath(c.Engine.FFmpegPath))
	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(c.Engine.FFprobePath))
	fileChecker := filesystem.NewChecker()

	output := trimOutputPath
	if output == "" {
		output = filepath.Join(filepath.Dir(trimInputPath), c.Output.FilenamePrefix+filepath.Base(trimInputPath))
	}

	return RunTrimWithDependencies(
		cmd.Context(),
		cutter,
		prober,
		fileChecker,
		trimInputPath,
		output,
		trimStartTime,
		trimEndTime,
		os.Stdout,
	)
}

// RunTrimWithDependencies runs the trim command with injected dependencies (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	cutter video.Cutter,
	prober video.Prober,
	fileChecker video.FileChecker,
	inputPath string,
	outputPath string,
	startTime string,
	endTime string,
	output io.Writer,
) error {
	// Verify the engine is available if the cutter supports it
	if verifiable, ok := cutter.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("engine verification failed: %w", err)
		}
	}

	start, end, err := parseWindowFlags(startTime, endTime)
	if err != nil {
		return err
	}

	service := apptrim.NewService(cutter, prober, fileChecker)

	req := &video.TrimRequest{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Start:      start,
		End:        end,
	}

	if endTime == "" {
		fmt.Fprintf(output, "Trimming video from %s to the end of the source...\n", startTime)
	} else {
		fmt.Fprintf(output, "Trimming video from %s to %s...\n", startTime, endTime)
	}

	outcome, err := service.Trim(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s (strategy: %s)\n", outcome.OutputPath, outcome.Strategy)
	return nil
}

// parseWindowFlags converts the string flags into a start and an optional end
func parseWindowFlags(startTime, endTime string) (float64, *float64, error) {
	start, err := video.ParseSeconds(startTime)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid start time: %w", err)
	}

	if endTime == "" {
		return start, nil, nil
	}

	end, err := video.ParseSeconds(endTime)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid end time: %w", err)
	}
	return start, &end, nil
}
