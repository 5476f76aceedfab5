package trim

import (
	"context"
	"errors"
	"testing"

	"video-trimmer/domain/video"
)

// --- Mock implementations for testing ---

type cutCall struct {
	inputPath  string
	outputPath string
	win        video.Window
	strategy   video.Strategy
}

// mockCutter implements video.Cutter for testing. Errors are returned per
// strategy so tests can reject the copy attempt while letting the re-encode
// fallback succeed.
type mockCutter struct {
	calls    []cutCall
	failures map[video.Strategy]error
}

func (m *mockCutter) Cut(ctx context.Context, inputPath, outputPath string, win video.Window, strategy video.Strategy) error {
	m.calls = append(m.calls, cutCall{inputPath, outputPath, win, strategy})
	return m.failures[strategy]
}

// mockProber implements video.Prober for testing
type mockProber struct {
	info  *video.MediaInfo
	err   error
	calls int
}

func (m *mockProber) Probe(ctx context.Context, path string) (*video.MediaInfo, error) {
	m.calls++
	return m.info, m.err
}

// mockFileChecker implements video.FileChecker for testing
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

func floatPtr(v float64) *float64 {
	return &v
}

func newTestService(cutter *mockCutter, prober *mockProber) (*Service, *mockFileChecker) {
	checker := &mockFileChecker{existingFiles: map[string]bool{"/videos/in.mp4": true}}
	return NewService(cutter, prober, checker), checker
}

func TestTrimCopySucceeds(t *testing.T) {
	cutter := &mockCutter{}
	svc, _ := newTestService(cutter, &mockProber{})

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      10,
		End:        floatPtr(20),
	}

	outcome, err := svc.Trim(context.Background(), req)
	if err != nil {
		t.Fatalf("Trim() unexpected error: %v", err)
	}

	if outcome.Strategy != video.StrategyCopy {
		t.Errorf("Strategy = %q, want copy", outcome.Strategy)
	}
	if outcome.OutputPath != "/videos/out.mp4" {
		t.Errorf("OutputPath = %q", outcome.OutputPath)
	}
	if len(cutter.calls) != 1 {
		t.Fatalf("expected exactly 1 cut, got %d", len(cutter.calls))
	}
	if cutter.calls[0].win != (video.Window{Start: 10, End: 20}) {
		t.Errorf("window = %+v", cutter.calls[0].win)
	}
}

func TestTrimFallsBackToReencode(t *testing.T) {
	cutter := &mockCutter{
		failures: map[video.Strategy]error{
			video.StrategyCopy: &video.CutError{
				Strategy: video.StrategyCopy,
				Stderr:   "codec not currently supported in container",
				Err:      errors.New("exit status 1"),
			},
		},
	}
	svc, _ := newTestService(cutter, &mockProber{})

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      10,
		End:        floatPtr(20),
	}

	outcome, err := svc.Trim(context.Background(), req)
	if err != nil {
		t.Fatalf("Trim() unexpected error: %v", err)
	}

	if outcome.Strategy != video.StrategyReencode {
		t.Errorf("Strategy = %q, want reencode", outcome.Strategy)
	}
	if len(cutter.calls) != 2 {
		t.Fatalf("expected 2 cuts (copy then re-encode), got %d", len(cutter.calls))
	}
	if cutter.calls[0].strategy != video.StrategyCopy || cutter.calls[1].strategy != video.StrategyReencode {
		t.Errorf("strategies = %q, %q", cutter.calls[0].strategy, cutter.calls[1].strategy)
	}
	if cutter.calls[0].win != cutter.calls[1].win {
		t.Errorf("fallback used a different window: %+v vs %+v", cutter.calls[0].win, cutter.calls[1].win)
	}
}

func TestTrimBothStagesFail(t *testing.T) {
	cutter := &mockCutter{
		failures: map[video.Strategy]error{
			video.StrategyCopy: &video.CutError{
				Strategy: video.StrategyCopy,
				Stderr:   "copy diagnostics",
				Err:      errors.New("exit status 1"),
			},
			video.StrategyReencode: &video.CutError{
				Strategy: video.StrategyReencode,
				Stderr:   "reencode diagnostics",
				Err:      errors.New("exit status 1"),
			},
		},
	}
	svc, _ := newTestService(cutter, &mockProber{})

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      10,
		End:        floatPtr(20),
	}

	_, err := svc.Trim(context.Background(), req)
	if err == nil {
		t.Fatal("Trim() expected error")
	}

	var engineErr *video.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("error = %T, want *video.EngineError", err)
	}
	if engineErr.CopyStderr != "copy diagnostics" {
		t.Errorf("CopyStderr = %q", engineErr.CopyStderr)
	}
	if engineErr.ReencodeStderr != "reencode diagnostics" {
		t.Errorf("ReencodeStderr = %q", engineErr.ReencodeStderr)
	}
	if len(cutter.calls) != 2 {
		t.Errorf("expected exactly 2 attempts (no extra retries), got %d", len(cutter.calls))
	}
}

func TestTrimMissingInput(t *testing.T) {
	cutter := &mockCutter{}
	prober := &mockProber{}
	svc, _ := newTestService(cutter, prober)

	req := &video.TrimRequest{
		InputPath:  "/videos/missing.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      0,
		End:        floatPtr(10),
	}

	_, err := svc.Trim(context.Background(), req)
	if !errors.Is(err, video.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
	if len(cutter.calls) != 0 || prober.calls != 0 {
		t.Error("no external invocation may happen for a missing input")
	}
}

func TestTrimNegativeStart(t *testing.T) {
	cutter := &mockCutter{}
	svc, _ := newTestService(cutter, &mockProber{})

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      -1,
		End:        floatPtr(10),
	}

	_, err := svc.Trim(context.Background(), req)
	if !errors.Is(err, video.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange", err)
	}
	if len(cutter.calls) != 0 {
		t.Error("no engine invocation may happen for an invalid range")
	}
}

func TestTrimEndNotAfterStart(t *testing.T) {
	tests := []struct {
		name string
		end  float64
	}{
		{"end equals start", 10},
		{"end before start", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutter := &mockCutter{}
			svc, _ := newTestService(cutter, &mockProber{})

			req := &video.TrimRequest{
				InputPath:  "/videos/in.mp4",
				OutputPath: "/videos/out.mp4",
				Start:      10,
				End:        floatPtr(tt.end),
			}

			_, err := svc.Trim(context.Background(), req)
			if !errors.Is(err, video.ErrInvalidRange) {
				t.Errorf("error = %v, want ErrInvalidRange", err)
			}
			if len(cutter.calls) != 0 {
				t.Error("no engine invocation may happen for an invalid range")
			}
		})
	}
}

func TestTrimResolvesEndFromProbe(t *testing.T) {
	cutter := &mockCutter{}
	prober := &mockProber{info: &video.MediaInfo{DurationSeconds: 120.5}}
	svc, _ := newTestService(cutter, prober)

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      0,
		End:        nil,
	}

	outcome, err := svc.Trim(context.Background(), req)
	if err != nil {
		t.Fatalf("Trim() unexpected error: %v", err)
	}

	if prober.calls != 1 {
		t.Errorf("probe calls = %d, want 1", prober.calls)
	}
	if cutter.calls[0].win.End != 120.5 {
		t.Errorf("resolved end = %v, want 120.5 (probed duration)", cutter.calls[0].win.End)
	}
	if outcome.Strategy != video.StrategyCopy {
		t.Errorf("Strategy = %q, want copy", outcome.Strategy)
	}
}

func TestTrimProbeFailure(t *testing.T) {
	cutter := &mockCutter{}
	prober := &mockProber{err: video.ErrProbeFailed}
	svc, _ := newTestService(cutter, prober)

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      0,
		End:        nil,
	}

	_, err := svc.Trim(context.Background(), req)
	if !errors.Is(err, video.ErrProbeFailed) {
		t.Errorf("error = %v, want ErrProbeFailed", err)
	}
	if len(cutter.calls) != 0 {
		t.Error("no cut may happen when end resolution fails")
	}
}

func TestTrimExplicitEndSkipsProbe(t *testing.T) {
	prober := &mockProber{err: errors.New("should not be called")}
	svc, _ := newTestService(&mockCutter{}, prober)

	req := &video.TrimRequest{
		InputPath:  "/videos/in.mp4",
		OutputPath: "/videos/out.mp4",
		Start:      0,
		End:        floatPtr(30),
	}

	if _, err := svc.Trim(context.Background(), req); err != nil {
		t.Fatalf("Trim() unexpected error: %v", err)
	}
	if prober.calls != 0 {
		t.Errorf("probe calls = %d, want 0 for explicit end", prober.calls)
	}
}
