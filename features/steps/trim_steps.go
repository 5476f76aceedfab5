//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"video-trimmer/cmd"
	"video-trimmer/domain/video"

	"github.com/cucumber/godog"
)

// mockCutter records engine invocations and rejects configured strategies
type mockCutter struct {
	calls              []cutCall
	rejectCopy         bool
	rejectReencode     bool
	reencodeDiagnostic string
}

type cutCall struct {
	inputPath  string
	outputPath string
	win        video.Window
	strategy   video.Strategy
}

func (m *mockCutter) Cut(ctx context.Context, inputPath, outputPath string, win video.Window, strategy video.Strategy) error {
	m.calls = append(m.calls, cutCall{inputPath, outputPath, win, strategy})

	switch strategy {
	case video.StrategyCopy:
		if m.rejectCopy {
			return &video.CutError{Strategy: strategy, Stderr: "copy rejected", Err: errors.New("exit status 1")}
		}
	case video.StrategyReencode:
		if m.rejectReencode {
			return &video.CutError{Strategy: strategy, Stderr: m.reencodeDiagnostic, Err: errors.New("exit status 1")}
		}
	}
	return nil
}

func (m *mockCutter) strategies() string {
	names := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		names = append(names, string(c.strategy))
	}
	return strings.Join(names, ",")
}

// mockProber returns a fixed duration
type mockProber struct {
	duration float64
}

func (m *mockProber) Probe(ctx context.Context, path string) (*video.MediaInfo, error) {
	return &video.MediaInfo{Filename: path, DurationSeconds: m.duration}, nil
}

// mockFileChecker simulates file existence
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// trimContext holds test state for trim scenarios
type trimContext struct {
	sourcePath  string
	cutter      *mockCutter
	prober      *mockProber
	fileChecker *mockFileChecker
	output      *bytes.Buffer
	err         error
}

// SharedTrimContext is reset before each scenario via Before hook
var SharedTrimContext *trimContext

func getTrimContext() *trimContext {
	return SharedTrimContext
}

func InitializeTrimScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedTrimContext = &trimContext{
			cutter:      &mockCutter{},
			prober:      &mockProber{},
			fileChecker: &mockFileChecker{existingFiles: make(map[string]bool)},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedTrimContext = nil
		return c, nil
	})

	ctx.Step(`^a source video at "([^"]*)"$`, aSourceVideoAt)
	ctx.Step(`^no source video exists at "([^"]*)"$`, noSourceVideoExistsAt)
	ctx.Step(`^the engine rejects stream copy$`, theEngineRejectsStreamCopy)
	ctx.Step(`^the engine rejects re-encoding with diagnostics "([^"]*)"$`, theEngineRejectsReencoding)
	ctx.Step(`^the probed duration is "([^"]*)" seconds$`, theProbedDurationIs)
	ctx.Step(`^I trim the video from "([^"]*)" to "([^"]*)" into "([^"]*)"$`, iTrimTheVideoFromToInto)
	ctx.Step(`^I trim the video from "([^"]*)" to the end of the source into "([^"]*)"$`, iTrimTheVideoToTheEndInto)
	ctx.Step(`^I attempt to trim the video from "([^"]*)" to "([^"]*)" into "([^"]*)"$`, iAttemptToTrimTheVideoFromToInto)
	ctx.Step(`^the trim should succeed with strategy "([^"]*)"$`, theTrimShouldSucceedWithStrategy)
	ctx.Step(`^the engine should have attempted strategies "([^"]*)"$`, theEngineShouldHaveAttemptedStrategies)
	ctx.Step(`^I should receive an engine error containing "([^"]*)"$`, iShouldReceiveAnEngineErrorContaining)
	ctx.Step(`^I should receive an error about a missing input file$`, iShouldReceiveAMissingInputError)
	ctx.Step(`^I should receive an error about an invalid range$`, iShouldReceiveAnInvalidRangeError)
	ctx.Step(`^the engine should not have been invoked$`, theEngineShouldNotHaveBeenInvoked)
	ctx.Step(`^the cut window should end at "([^"]*)" seconds$`, theCutWindowShouldEndAt)
}

func aSourceVideoAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	t.fileChecker.existingFiles[path] = true
	return nil
}

func noSourceVideoExistsAt(path string) error {
	t := getTrimContext()
	t.sourcePath = path
	t.fileChecker.existingFiles[path] = false
	return nil
}

func theEngineRejectsStreamCopy() error {
	getTrimContext().cutter.rejectCopy = true
	return nil
}

func theEngineRejectsReencoding(diagnostic string) error {
	t := getTrimContext()
	t.cutter.rejectReencode = true
	t.cutter.reencodeDiagnostic = diagnostic
	return nil
}

func theProbedDurationIs(duration string) error {
	v, err := strconv.ParseFloat(duration, 64)
	if err != nil {
		return err
	}
	getTrimContext().prober.duration = v
	return nil
}

func runTrim(start, end, outputPath string) {
	t := getTrimContext()
	t.err = cmd.RunTrimWithDependencies(
		context.Background(),
		t.cutter,
		t.prober,
		t.fileChecker,
		t.sourcePath,
		outputPath,
		start,
		end,
		t.output,
	)
}

func iTrimTheVideoFromToInto(start, end, outputPath string) error {
	runTrim(start, end, outputPath)
	if err := getTrimContext().err; err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func iTrimTheVideoToTheEndInto(start, outputPath string) error {
	runTrim(start, "", outputPath)
	if err := getTrimContext().err; err != nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	return nil
}

func iAttemptToTrimTheVideoFromToInto(start, end, outputPath string) error {
	runTrim(start, end, outputPath)
	return nil
}

func theTrimShouldSucceedWithStrategy(strategy string) error {
	t := getTrimContext()
	if t.err != nil {
		return fmt.Errorf("trim failed: %v", t.err)
	}
	want := fmt.Sprintf("(strategy: %s)", strategy)
	if !strings.Contains(t.output.String(), want) {
		return fmt.Errorf("expected output to report %q, got: %s", want, t.output.String())
	}
	return nil
}

func theEngineShouldHaveAttemptedStrategies(expected string) error {
	t := getTrimContext()
	if got := t.cutter.strategies(); got != expected {
		return fmt.Errorf("expected strategies %q, got %q", expected, got)
	}
	return nil
}

func iShouldReceiveAnEngineErrorContaining(diagnostic string) error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	var engineErr *video.EngineError
	if !errors.As(t.err, &engineErr) {
		return fmt.Errorf("expected an engine error, got: %v", t.err)
	}
	if !strings.Contains(engineErr.ReencodeStderr, diagnostic) {
		return fmt.Errorf("expected diagnostics containing %q, got %q", diagnostic, engineErr.ReencodeStderr)
	}
	return nil
}

func iShouldReceiveAMissingInputError() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !errors.Is(t.err, video.ErrFileNotFound) {
		return fmt.Errorf("expected a file-not-found error, got: %v", t.err)
	}
	return nil
}

func iShouldReceiveAnInvalidRangeError() error {
	t := getTrimContext()
	if t.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !errors.Is(t.err, video.ErrInvalidRange) {
		return fmt.Errorf("expected an invalid-range error, got: %v", t.err)
	}
	return nil
}

func theEngineShouldNotHaveBeenInvoked() error {
	t := getTrimContext()
	if len(t.cutter.calls) != 0 {
		return fmt.Errorf("expected no engine invocations, got %d", len(t.cutter.calls))
	}
	return nil
}

func theCutWindowShouldEndAt(end string) error {
	t := getTrimContext()
	want, err := strconv.ParseFloat(end, 64)
	if err != nil {
		return err
	}
	if len(t.cutter.calls) == 0 {
		return fmt.Errorf("the engine was not invoked")
	}
	if got := t.cutter.calls[0].win.End; got != want {
		return fmt.Errorf("expected cut window end %v, got %v", want, got)
	}
	return nil
}
