package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"video-trimmer/domain/video"
)

// Prober implements video.Prober using ffprobe
type Prober struct {
	ffprobePath string
	runner      CommandRunner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		p.ffprobePath = path
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// container and stream metadata.
func (p *Prober) Probe(ctx context.Context, path string) (*video.MediaInfo, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe on %q: %v", video.ErrProbeFailed, path, err)
	}

	return ParseProbeJSON(out)
}

// VerifyInstalled checks that ffprobe is available
func (p *Prober) VerifyInstalled(ctx context.Context) error {
	_, err := p.runner.Output(ctx, p.ffprobePath, "-version")
	if err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// ParseProbeJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*video.MediaInfo, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing ffprobe JSON: %v", video.ErrProbeFailed, err)
	}
	return buildMediaInfo(&raw)
}

// --- ffprobe JSON wire types ---

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type probeStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	Channels     int    `json:"channels"`
	SampleRate   string `json:"sample_rate"`
}

// buildMediaInfo converts wire types to the domain type, keeping the first
// video and the first audio stream and ignoring any further streams.
func buildMediaInfo(raw *probeOutput) (*video.MediaInfo, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: container has no parseable duration", video.ErrProbeFailed)
	}

	info := &video.MediaInfo{
		Filename:        raw.Format.Filename,
		ContainerFormat: raw.Format.FormatName,
		DurationSeconds: duration,
		SizeBytes:       parseInt64(raw.Format.Size),
		Bitrate:         parseInt64(raw.Format.BitRate),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if info.Video == nil {
				info.Video = &video.VideoStream{
					Codec:     s.CodecName,
					Width:     s.Width,
					Height:    s.Height,
					FrameRate: video.ResolveFrameRate(s.AvgFrameRate, s.RFrameRate),
				}
			}
		case "audio":
			if info.Audio == nil {
				info.Audio = &video.AudioStream{
					Codec:      s.CodecName,
					Channels:   s.Channels,
					SampleRate: parseInt(s.SampleRate),
				}
			}
		}
	}

	return info, nil
}

// ffprobe reports numbers as strings; unparseable values degrade to zero
func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// Ensure Prober implements video.Prober
var _ video.Prober = (*Prober)(nil)
