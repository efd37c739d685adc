package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"chaptercut/internal/media/ffmpeg"
	"chaptercut/internal/media/ffprobe"
	"chaptercut/internal/postprocess"
	"chaptercut/internal/services"
	"chaptercut/internal/source"
	"chaptercut/internal/testsupport"
	"chaptercut/internal/timestamps"
	"chaptercut/internal/workflow"
)

type fakeProvider struct {
	video        source.Video
	comments     []string
	commentCalls int
	max          int
}

func (f *fakeProvider) Video(context.Context) (source.Video, error) { return f.video, nil }

func (f *fakeProvider) Comments(_ context.Context, max int) ([]string, error) {
	f.commentCalls++
	f.max = max
	return f.comments, nil
}

func writingRunner(fail func(ffmpeg.Command) error) ffmpeg.Runner {
	return ffmpeg.RunnerFunc(func(_ context.Context, cmd ffmpeg.Command) error {
		if fail != nil {
			if err := fail(cmd); err != nil {
				return err
			}
		}
		return os.WriteFile(cmd.Output, []byte(cmd.Stage), 0o644)
	})
}

const descriptionListing = `Tracklist:
0:00 Main Theme
8:00 - Wasteland
16:00 [Vault]
24:00 Caravan
32:00 Dust
48:00 Credits`

func newManager(t *testing.T, provider source.Provider, runner ffmpeg.Runner) (*workflow.Manager, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithoutTagVerification())
	media := testsupport.WriteText(t, filepath.Join(testsupport.BaseDir(cfg), "download.mp3"), "media")
	m := workflow.NewManager(cfg, provider, nil,
		workflow.WithRunner(runner),
		workflow.WithProgressOutput(nil),
	)
	return m, media
}

func TestRunFromDescription(t *testing.T) {
	provider := &fakeProvider{video: source.Video{
		ID:          "DyY9Wpfajqo",
		Title:       "Fallout: New Vegas OST",
		Description: descriptionListing,
		Channel:     "Inon Zur",
		Published:   time.Date(2010, 10, 19, 0, 0, 0, 0, time.UTC),
		Duration:    time.Hour,
	}}
	m, media := newManager(t, provider, writingRunner(nil))

	report, err := m.Run(context.Background(), media)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if provider.commentCalls != 0 {
		t.Fatal("comments fetched although the description validated")
	}
	if report.Err() != nil || report.Completed() != 6 {
		t.Fatalf("expected 6 completed segments, got %+v", report.Results)
	}
	if report.Candidate.Block.Origin != timestamps.OriginDescription {
		t.Fatalf("unexpected origin %s", report.Candidate.Block.Label())
	}
	if got := report.Segments[5]; got.Start != 48*time.Minute+time.Second || got.End != time.Hour {
		t.Fatalf("unexpected last segment %s", got)
	}
	if report.Album["album"] != provider.video.Title || report.Album["album_artist"] != "Inon Zur" || report.Album["date"] != "2010" {
		t.Fatalf("unexpected album tags %v", report.Album)
	}
	if filepath.Base(report.OutputDir) != "Fallout- New Vegas OST" {
		t.Fatalf("unexpected output dir %s", report.OutputDir)
	}

	got := testsupport.ListDir(t, report.OutputDir)
	want := []string{"Caravan.mp3", "Credits.mp3", "Dust.mp3", "Fallout- New Vegas OST_timestamps.txt", "Main Theme.mp3", "Vault.mp3", "Wasteland.mp3"}
	if !slices.Equal(got, want) {
		t.Fatalf("output folder = %v, want %v", got, want)
	}
	sidecar, err := os.ReadFile(report.Sidecar)
	if err != nil || string(sidecar) != descriptionListing {
		t.Fatalf("unexpected sidecar %q %v", sidecar, err)
	}
}

func TestRunFallsBackToComments(t *testing.T) {
	provider := &fakeProvider{
		video: source.Video{ID: "abc", Title: "LOTR", Description: "Enjoy!", Duration: 10 * time.Minute},
		comments: []string{
			"first!",
			"0:00 - 2:00 \"Prologue\"\n2:01 - 4:00 Shire\n4:01 - 6:00 Bree\n6:01 - 8:00 Rivendell\n8:01 - 10:00 Moria",
		},
	}
	m, media := newManager(t, provider, writingRunner(nil))

	report, err := m.Run(context.Background(), media)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if provider.commentCalls != 1 || provider.max != 1000 {
		t.Fatalf("expected one comment fetch capped at 1000, got %d calls max %d", provider.commentCalls, provider.max)
	}
	if report.Candidate.Block.Index != 2 || report.Candidate.Style != timestamps.StyleDuration {
		t.Fatalf("unexpected candidate %s %s", report.Candidate.Block.Label(), report.Candidate.Style)
	}
	if len(report.Results) != 6 {
		t.Fatalf("expected 5 segments plus trailing guard, got %d", len(report.Results))
	}
	if report.Results[5].State != postprocess.StateSkipped {
		t.Fatalf("expected trailing guard skipped, got %+v", report.Results[5])
	}
	if report.Completed() != 5 {
		t.Fatalf("expected 5 completed, got %d", report.Completed())
	}
}

func TestRunWithoutTimestamps(t *testing.T) {
	provider := &fakeProvider{
		video:    source.Video{ID: "abc", Title: "Podcast", Description: "no chapters", Duration: time.Hour},
		comments: []string{"great", "10:00 my favourite part"},
	}
	m, media := newManager(t, provider, writingRunner(nil))

	report, err := m.Run(context.Background(), media)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, statErr := os.Stat(report.OutputDir); report.OutputDir != "" && statErr == nil {
		t.Fatal("no output folder should be created without a candidate")
	}
}

func TestRunReportsFailureWhenNothingCompletes(t *testing.T) {
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Mix", Description: descriptionListing, Duration: time.Hour}}
	boom := services.Wrap(services.ErrExternalTool, "slice", "ffmpeg", "codec missing", errors.New("exit status 1"))
	m, media := newManager(t, provider, writingRunner(func(ffmpeg.Command) error { return boom }))

	report, err := m.Run(context.Background(), media)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !errors.Is(report.Err(), services.ErrExternalTool) {
		t.Fatalf("expected run failure, got %v", report.Err())
	}

	var out bytes.Buffer
	workflow.RenderSummary(&out, report)
	if !strings.Contains(out.String(), "0/6 done") || !strings.Contains(out.String(), "external_tool") {
		t.Fatalf("unexpected summary:\n%s", out.String())
	}
}

func TestPlanProbesMediaWhenDurationUnknown(t *testing.T) {
	restore := workflow.SetProbeForTests(func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Format: ffprobe.Format{Duration: "3600.9"}}, nil
	})
	defer restore()
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Live", Description: descriptionListing}}
	m, media := newManager(t, provider, writingRunner(nil))

	report, err := m.Plan(context.Background(), media)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if report.Video.Duration != time.Hour {
		t.Fatalf("expected probed duration, got %s", report.Video.Duration)
	}
	if _, err := os.Stat(report.OutputDir); err == nil {
		t.Fatal("plan must not create the output folder")
	}

	var out bytes.Buffer
	workflow.RenderSegments(&out, report.Segments)
	if !strings.Contains(out.String(), "Wasteland") || !strings.Contains(out.String(), "00:48:01") {
		t.Fatalf("unexpected segment table:\n%s", out.String())
	}
}

func TestPlanRejectsUnknownMetadataTag(t *testing.T) {
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Mix", Description: descriptionListing, Duration: time.Hour}}
	cfg := testsupport.NewConfig(t, testsupport.WithMetadataTags(map[string]string{"mood": "chill"}))
	m := workflow.NewManager(cfg, provider, nil, workflow.WithRunner(writingRunner(nil)))

	if _, err := m.Plan(context.Background(), ""); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestPlanUsesConfiguredThreshold(t *testing.T) {
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Mix", Description: descriptionListing, Duration: time.Hour}}
	cfg := testsupport.NewConfig(t, testsupport.WithThreshold(0.9))
	m := workflow.NewManager(cfg, provider, nil, workflow.WithRunner(writingRunner(nil)))

	if _, err := m.Plan(context.Background(), ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error at 0.9 threshold, got %v", err)
	}
}

func TestRunAppliesFractionalFade(t *testing.T) {
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Mix", Description: descriptionListing, Duration: time.Hour}}
	cfg := testsupport.NewConfig(t, testsupport.WithoutTagVerification(), testsupport.WithFade("in", 0.5))
	media := testsupport.WriteText(t, filepath.Join(testsupport.BaseDir(cfg), "mix.mp3"), "media")

	var mu sync.Mutex
	var filters []string
	runner := writingRunner(func(cmd ffmpeg.Command) error {
		if cmd.Stage == "fade" {
			mu.Lock()
			filters = append(filters, strings.Join(cmd.Args, " "))
			mu.Unlock()
		}
		return nil
	})
	m := workflow.NewManager(cfg, provider, nil, workflow.WithRunner(runner), workflow.WithProgressOutput(nil))

	report, err := m.Run(context.Background(), media)
	if err != nil || report.Completed() != 6 {
		t.Fatalf("Run: %v (%d completed)", err, report.Completed())
	}
	if len(filters) != 6 {
		t.Fatalf("expected 6 fade invocations, got %d", len(filters))
	}
	for _, args := range filters {
		if !strings.Contains(args, "afade=t=in:st=0:d=0.5") {
			t.Fatalf("fade args lack half-second fade: %s", args)
		}
	}
}

func TestRunLockedFolderKeepsPreviousSidecar(t *testing.T) {
	provider := &fakeProvider{video: source.Video{ID: "x", Title: "Mix", Description: descriptionListing, Duration: time.Hour}}
	m, media := newManager(t, provider, writingRunner(nil))

	first, err := m.Run(context.Background(), media)
	if err != nil || first.Sidecar == "" {
		t.Fatalf("first run: %v (sidecar %q)", err, first.Sidecar)
	}
	if err := os.WriteFile(first.Sidecar, []byte("from the first run"), 0o644); err != nil {
		t.Fatalf("rewrite sidecar: %v", err)
	}

	lock := flock.New(filepath.Join(first.OutputDir, postprocess.LockFileName))
	if ok, err := lock.TryLock(); err != nil || !ok {
		t.Fatalf("pre-lock: %v %v", ok, err)
	}
	defer lock.Unlock()

	second, err := m.Run(context.Background(), media)
	if !errors.Is(err, services.ErrPrecondition) {
		t.Fatalf("expected locked-folder precondition error, got %v", err)
	}
	if second.Sidecar != "" {
		t.Fatalf("sidecar reported for a run that never held the lock: %s", second.Sidecar)
	}
	data, err := os.ReadFile(first.Sidecar)
	if err != nil || string(data) != "from the first run" {
		t.Fatalf("sidecar overwritten without the lock: %q %v", data, err)
	}
}
