//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	appbatch "video-trimmer/application/batch"
	apptrim "video-trimmer/application/trim"
	"video-trimmer/cmd"
	"video-trimmer/domain/video"

	"github.com/cucumber/godog"
)

// batchCutter rejects every cut of the configured inputs, on both strategies
type batchCutter struct {
	calls      []cutCall
	failInputs map[string]bool
}

func (m *batchCutter) Cut(ctx context.Context, inputPath, outputPath string, win video.Window, strategy video.Strategy) error {
	m.calls = append(m.calls, cutCall{inputPath, outputPath, win, strategy})
	if m.failInputs[inputPath] {
		return &video.CutError{Strategy: strategy, Stderr: "engine rejection", Err: errors.New("exit status 1")}
	}
	return nil
}

// batchDirMaker records destination directory creation
type batchDirMaker struct {
	created []string
}

func (m *batchDirMaker) EnsureDir(path string) error {
	m.created = append(m.created, path)
	return nil
}

// batchContext holds test state for batch scenarios
type batchContext struct {
	inputs      []string
	cutter      *batchCutter
	prober      *mockProber
	fileChecker *mockFileChecker
	dirs        *batchDirMaker
	output      *bytes.Buffer
	progressed  []string
	summary     *appbatch.Summary
	err         error
}

// SharedBatchContext is reset before each scenario via Before hook
var SharedBatchContext *batchContext

func getBatchContext() *batchContext {
	return SharedBatchContext
}

func InitializeBatchScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedBatchContext = &batchContext{
			cutter:      &batchCutter{failInputs: make(map[string]bool)},
			prober:      &mockProber{duration: 60},
			fileChecker: &mockFileChecker{existingFiles: make(map[string]bool)},
			dirs:        &batchDirMaker{},
			output:      &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedBatchContext = nil
		return c, nil
	})

	ctx.Step(`^source videos at "([^"]*)"$`, sourceVideosAt)
	ctx.Step(`^the engine rejects every cut of "([^"]*)"$`, theEngineRejectsEveryCutOf)
	ctx.Step(`^I run the batch from "([^"]*)" to "([^"]*)"$`, iRunTheBatchFromTo)
	ctx.Step(`^the batch summary should report (\d+) succeeded and (\d+) failed$`, theBatchSummaryShouldReport)
	ctx.Step(`^the batch output directory should be "([^"]*)"$`, theBatchOutputDirectoryShouldBe)
	ctx.Step(`^progress should have been reported for "([^"]*)"$`, progressShouldHaveBeenReportedFor)
	ctx.Step(`^the results for "([^"]*)" should be successful$`, theResultsForShouldBeSuccessful)
	ctx.Step(`^the first output path should be "([^"]*)"$`, theFirstOutputPathShouldBe)
}

func sourceVideosAt(list string) error {
	b := getBatchContext()
	b.inputs = strings.Split(list, ",")
	for _, path := range b.inputs {
		b.fileChecker.existingFiles[path] = true
	}
	return nil
}

func theEngineRejectsEveryCutOf(path string) error {
	getBatchContext().cutter.failInputs[path] = true
	return nil
}

func iRunTheBatchFromTo(start, end string) error {
	b := getBatchContext()

	trimService := apptrim.NewService(b.cutter, b.prober, b.fileChecker)
	batchService := appbatch.NewService(trimService, b.dirs, "trimmed_videos", "trimmed_")

	// Mirror the progress callback the CLI installs, recording filenames
	wrapped := func(index, total int, filename string, outcome *video.TrimOutcome, err error) {
		b.progressed = append(b.progressed, filename)
	}

	summary, err := batchService.Run(context.Background(), b.inputs, mustSeconds(start), endPtr(end), wrapped)
	b.summary = summary
	b.err = err

	// Exercise the command wiring too, on the same inputs
	return cmd.RunBatchWithDependencies(context.Background(), batchService, b.inputs, start, end, b.output)
}

func mustSeconds(s string) float64 {
	v, err := video.ParseSeconds(s)
	if err != nil {
		return 0
	}
	return v
}

func endPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v := mustSeconds(s)
	return &v
}

func theBatchSummaryShouldReport(succeeded, failed int) error {
	b := getBatchContext()
	if b.err != nil {
		return fmt.Errorf("batch failed: %v", b.err)
	}
	if b.summary.Succeeded != succeeded || b.summary.Failed != failed {
		return fmt.Errorf("expected %d/%d, got %d/%d", succeeded, failed, b.summary.Succeeded, b.summary.Failed)
	}
	return nil
}

func theBatchOutputDirectoryShouldBe(dir string) error {
	b := getBatchContext()
	if b.summary.OutputDir != dir {
		return fmt.Errorf("expected output directory %q, got %q", dir, b.summary.OutputDir)
	}
	return nil
}

func progressShouldHaveBeenReportedFor(list string) error {
	b := getBatchContext()
	want := strings.Split(list, ",")
	if len(b.progressed) != len(want) {
		return fmt.Errorf("expected %d progress events, got %d", len(want), len(b.progressed))
	}
	for i := range want {
		if b.progressed[i] != want[i] {
			return fmt.Errorf("progress[%d] = %q, want %q", i, b.progressed[i], want[i])
		}
	}
	return nil
}

func theResultsForShouldBeSuccessful(list string) error {
	b := getBatchContext()
	for _, name := range strings.Split(list, ",") {
		found := false
		for _, res := range b.summary.Results {
			if filepath.Base(res.InputPath) == name {
				found = true
				if !res.Succeeded() {
					return fmt.Errorf("result for %q failed: %v", name, res.Err)
				}
			}
		}
		if !found {
			return fmt.Errorf("no result recorded for %q", name)
		}
	}
	return nil
}

func theFirstOutputPathShouldBe(expected string) error {
	b := getBatchContext()
	if len(b.summary.Results) == 0 {
		return fmt.Errorf("no results recorded")
	}
	res := b.summary.Results[0]
	if res.Outcome == nil {
		return fmt.Errorf("first result failed: %v", res.Err)
	}
	if res.Outcome.OutputPath != expected {
		return fmt.Errorf("expected output path %q, got %q", expected, res.Outcome.OutputPath)
	}
	return nil
}
