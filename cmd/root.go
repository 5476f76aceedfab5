package cmd

import (
	"fmt"
	"os"

	"video-trimmer/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "video-trimmer",
	Short: "Cut time ranges out of video files",
	Long: `video-trimmer extracts time ranges from video files using the local
ffmpeg installation:

  - Trim one file or a batch sharing the same [start, end) window
  - Lossless stream-copy cut with automatic re-encode fallback
  - Probe files for duration, codecs and stream details
  - Watch a directory and trim new recordings as they appear

Example:
  video-trimmer trim --input recording.mp4 --start 00:05:30 --end 01:15:00`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		// The config file is optional; built-in defaults cover the common
		// case of ffmpeg/ffprobe on PATH.
		cfg = config.Default()
		return
	}
	cfg = loaded
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
