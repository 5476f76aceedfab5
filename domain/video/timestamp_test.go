package video

import (
	"math"
	"testing"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{
			name:  "plain integer seconds",
			input: "90",
			want:  90,
		},
		{
			name:  "plain fractional seconds",
			input: "90.5",
			want:  90.5,
		},
		{
			name:  "negative seconds parse and are rejected later",
			input: "-5",
			want:  -5,
		},
		{
			name:  "minutes and seconds",
			input: "01:30",
			want:  90,
		},
		{
			name:  "minutes and fractional seconds",
			input: "1:30.5",
			want:  90.5,
		},
		{
			name:  "hours minutes seconds",
			input: "01:02:03",
			want:  3723,
		},
		{
			name:  "surrounding whitespace",
			input: " 42 ",
			want:  42,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a time",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "minutes out of range",
			input:   "1:61:00",
			wantErr: true,
		},
		{
			name:    "seconds out of range",
			input:   "01:61",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeconds(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeconds(%q) expected error, got %v", tt.input, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseSeconds(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseSeconds(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/videos/clip.mp4", true},
		{"/videos/CLIP.MKV", true},
		{"clip.mov", true},
		{"clip.avi", true},
		{"clip.wmv", true},
		{"notes.txt", false},
		{"archive.mp4.part", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
