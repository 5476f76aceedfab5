package video

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// timestampRegex matches [HH:]MM:SS with an optional fractional second part
var timestampRegex = regexp.MustCompile(`^(?:(\d{1,3}):)?(\d{1,2}):(\d{1,2}(?:\.\d+)?)$`)

// ParseSeconds parses a time position given either as plain seconds
// ("90.5") or as a clock timestamp ("01:30.5", "00:01:30"). Negative plain
// values parse successfully; range validation rejects them later so that the
// caller sees ErrInvalidRange rather than a parse error.
func ParseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("time position is required")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid time position %q", s)
		}
		return v, nil
	}

	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid time position %q: expected seconds or [HH:]MM:SS", s)
	}

	hours := 0
	if matches[1] != "" {
		hours, _ = strconv.Atoi(matches[1])
	}
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.ParseFloat(matches[3], 64)

	if minutes > 59 {
		return 0, fmt.Errorf("invalid time position %q: minutes must be 0-59", s)
	}
	if seconds >= 60 {
		return 0, fmt.Errorf("invalid time position %q: seconds must be 0-59", s)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// videoExtensions matches the source file filter of the desktop front-end.
var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
	".wmv": true,
}

// IsVideoFile reports whether the path has a recognized video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
