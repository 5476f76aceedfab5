package video

import (
	"strconv"
	"strings"
)

// MediaInfo holds the container and stream metadata extracted by a single
// probe. It is immutable once built.
type MediaInfo struct {
	Filename        string
	ContainerFormat string
	DurationSeconds float64
	SizeBytes       int64
	Bitrate         int64
	Video           *VideoStream // nil when the file has no video stream
	Audio           *AudioStream // nil when the file has no audio stream
}

// VideoStream describes the first video stream of a probed file.
type VideoStream struct {
	Codec     string
	Width     int
	Height    int
	FrameRate float64
}

// AudioStream describes the first audio stream of a probed file.
type AudioStream struct {
	Codec      string
	Channels   int
	SampleRate int
}

// ResolveFrameRate applies the frame-rate resolution policy: the average
// frame rate ("num/den") wins when its denominator is non-zero, the nominal
// frame rate is the fallback under the same rule, and an unresolvable rate
// degrades to 0.0 rather than erroring.
func ResolveFrameRate(avg, nominal string) float64 {
	if v, ok := parseRatio(avg); ok {
		return v
	}
	if v, ok := parseRatio(nominal); ok {
		return v
	}
	return 0.0
}

// parseRatio parses an "num/den" integer ratio. It reports false for a
// missing slash, non-integer parts, or a zero denominator.
func parseRatio(s string) (float64, bool) {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	d, err := strconv.Atoi(den)
	if err != nil || d == 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}
