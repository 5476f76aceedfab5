package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"video-trimmer/domain/video"
	"video-trimmer/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show container and stream metadata for a video file",
	Long: `Probe a media file and print its container format, duration, size,
bitrate, and the properties of its first video and audio streams.

Example:
  video-trimmer info recording.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	c := GetConfig()
	prober := ffmpeg.NewProber(ffmpeg.WithFFprobePath(c.Engine.FFprobePath))

	return RunInfoWithDependencies(cmd.Context(), prober, args[0], os.Stdout)
}

// RunInfoWithDependencies runs the info command with injected dependencies (for testing)
func RunInfoWithDependencies(ctx context.Context, prober video.Prober, path string, output io.Writer) error {
	info, err := prober.Probe(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "File:     %s\n", info.Filename)
	fmt.Fprintf(output, "Format:   %s\n", info.ContainerFormat)
	fmt.Fprintf(output, "Duration: %.2f s\n", info.DurationSeconds)
	fmt.Fprintf(output, "Size:     %.1f MB\n", float64(info.SizeBytes)/1024/1024)
	fmt.Fprintf(output, "Bitrate:  %d b/s\n", info.Bitrate)

	if info.Video != nil {
		fmt.Fprintf(output, "Video:    %s %dx%d @ %.2f fps\n",
			info.Video.Codec, info.Video.Width, info.Video.Height, info.Video.FrameRate)
	}
	if info.Audio != nil {
		fmt.Fprintf(output, "Audio:    %s %d ch @ %d Hz\n",
			info.Audio.Codec, info.Audio.Channels, info.Audio.SampleRate)
	}

	return nil
}
