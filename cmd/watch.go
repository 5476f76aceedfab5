package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	apptrim "video-trimmer/application/trim"
	appwatch "video-trimmer/application/watch"
	"video-trimmer/infrastructure/ffmpeg"
	"video-trimmer/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	watchStartTime string
	watchEndTime   string
	watchSettle    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and trim new videos as they appear",
	Long: `Watch a directory and trim every new video file with the configured
window once its writes have settled. Outputs land in the configured
subfolder of the watched directory. Stop with Ctrl+C.

Example:
  video-trimmer watch ./recordings --start 0 --end 00:30:00`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchStartTime, "start", "0", "Start position (seconds or [HH:]MM:SS)")
	watchCmd.Flags().StringVar(&watchEndTime, "end", "", "End position (seconds or [HH:]MM:SS); omit to trim to each source's end")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 0, "Quiet period before a new file is trimmed (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c := GetConfig()

	start, end, err := parseWindowFlags(watchStartTime, watchEndTime)
	if err != nil {
		return err
	}

	cutter := ffmpeg.NewCutter(ffmpeg.WithFFmpegPath(c.Engine.FFmpegPath))
	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(c.Engine.FFprobePath))
	checker := filesystem.NewChecker()

	if err := verifyEngine(cmd.Context(), cutter); err != nil {
		return err
	}

	settle := watchSettle
	if settle <= 0 {
		settle = time.Duration(c.Watch.SettleSeconds * float64(time.Second))
	}

	trimService := apptrim.NewService(cutter, prober, checker)
	watchService := appwatch.NewService(
		trimService,
		checker,
		c.Output.DirectoryName,
		c.Output.FilenamePrefix,
		start,
		end,
		settle,
		os.Stdout,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watchService.Run(ctx, args[0]); err != nil && err != context.Canceled {
		return fmt.Errorf("watch stopped: %w", err)
	}
	return nil
}
