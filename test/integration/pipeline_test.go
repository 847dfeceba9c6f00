package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/renamr/internal/engine"
	"github.com/danieljhkim/renamr/internal/planner"
)

var imageExts = []string{".jpg", ".jpeg", ".png"}

func TestPipeline_SequenceRoundTrip(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "img1.jpg", "one")
	p.writeFile(t, "img2.PNG", "two")
	ctx := context.Background()

	rules := planner.DefaultRules()
	rules.Prefix = "Photo"
	rules.StartIndex = 10
	rules.Case = planner.CaseLower

	entries := p.preview(t, rules, imageExts...)
	count, err := p.engine.ExecuteRename(ctx, entries, false)
	if err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 renames, got %d", count)
	}
	if diff := cmp.Diff([]string{"photo_010.jpg", "photo_011.png"}, p.names(t)); diff != "" {
		t.Errorf("after rename (-want +got):\n%s", diff)
	}

	// a second preview of the renamed files is stable
	again := p.preview(t, rules, imageExts...)
	for _, e := range again {
		if e.Status != planner.StatusUnchanged {
			t.Errorf("%s: expected unchanged, got %s -> %s", e.OriginalName, e.Status, e.ProposedName)
		}
	}

	restored, err := p.engine.UndoLastOperation(ctx)
	if err != nil {
		t.Fatalf("UndoLastOperation() error = %v", err)
	}
	if restored != 2 {
		t.Errorf("expected 2 restored, got %d", restored)
	}
	if diff := cmp.Diff([]string{"img1.jpg", "img2.PNG"}, p.names(t)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}

	content, err := os.ReadFile(filepath.Join(p.dir, "img2.PNG"))
	if err != nil || string(content) != "two" {
		t.Errorf("content did not follow its file: %q, %v", content, err)
	}
}

func TestPipeline_RegexMode(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "img1.jpg", "")
	p.writeFile(t, "holiday.jpg", "")

	rules := planner.RuleConfig{
		Mode:             planner.ModeRegex,
		RegexPattern:     `img(\d+)`,
		RegexReplacement: `Picture-\1`,
	}

	entries := p.preview(t, rules, imageExts...)
	if _, err := p.engine.ExecuteRename(context.Background(), entries, false); err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}

	if diff := cmp.Diff([]string{"Picture-1.jpg", "holiday.jpg"}, p.names(t)); diff != "" {
		t.Errorf("after rename (-want +got):\n%s", diff)
	}
}

func TestPipeline_ResolutionMode(t *testing.T) {
	p := setupPipeline(t)
	mtime := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	p.writePNG(t, "a.png", 64, 48, mtime)
	p.writePNG(t, "b.png", 32, 32, mtime)

	rules := planner.DefaultRules()
	rules.Mode = planner.ModeMetadataResolution
	rules.Prefix = "img_"

	entries := p.preview(t, rules, imageExts...)
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.ProposedName)
	}
	if diff := cmp.Diff([]string{"img_64x48_001.png", "img_32x32_002.png"}, got); diff != "" {
		t.Errorf("proposed names (-want +got):\n%s", diff)
	}
}

func TestPipeline_DateModeFallsBackToModTime(t *testing.T) {
	p := setupPipeline(t)
	mtime := time.Date(2023, 6, 1, 8, 30, 15, 0, time.UTC)
	p.writePNG(t, "shot.png", 8, 8, mtime)

	rules := planner.DefaultRules()
	rules.Mode = planner.ModeMetadataDate

	entries := p.preview(t, rules, imageExts...)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	want := mtime.In(time.Local).Format("20060102_150405") + "_001.png"
	if entries[0].ProposedName != want {
		t.Errorf("ProposedName = %q, want %q", entries[0].ProposedName, want)
	}
}

func TestPipeline_UnreadableImageExcluded(t *testing.T) {
	p := setupPipeline(t)
	mtime := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	p.writePNG(t, "a.png", 10, 20, mtime)
	p.writeFile(t, "broken.jpg", "definitely not a jpeg")

	rules := planner.DefaultRules()
	rules.Mode = planner.ModeMetadataResolution

	entries := p.preview(t, rules, imageExts...)
	sum := planner.Summarize(entries)
	if sum.OK != 1 || sum.Errors != 1 {
		t.Fatalf("expected 1 ok and 1 error, got %+v", sum)
	}

	count, err := p.engine.ExecuteRename(context.Background(), entries, false)
	if err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 rename, got %d", count)
	}
	if diff := cmp.Diff([]string{"10x20_001.png", "broken.jpg"}, p.names(t)); diff != "" {
		t.Errorf("after rename (-want +got):\n%s", diff)
	}
}

func TestPipeline_SidecarFollowsImage(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "photo.jpg", "img")
	p.writeFile(t, "photo.txt", "caption")
	ctx := context.Background()

	rules := planner.DefaultRules()
	rules.Prefix = "vacation"

	entries := p.preview(t, rules, imageExts...)
	count, err := p.engine.ExecuteRename(ctx, entries, true)
	if err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}
	if count != 2 {
		t.Errorf("expected image and sidecar renamed, got %d", count)
	}
	if diff := cmp.Diff([]string{"vacation_001.jpg", "vacation_001.txt"}, p.names(t)); diff != "" {
		t.Errorf("after rename (-want +got):\n%s", diff)
	}

	if _, err := p.engine.UndoLastOperation(ctx); err != nil {
		t.Fatalf("UndoLastOperation() error = %v", err)
	}
	if diff := cmp.Diff([]string{"photo.jpg", "photo.txt"}, p.names(t)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}
}

func TestPipeline_SwapThroughTempNames(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "a.jpg", "A")
	p.writeFile(t, "b.jpg", "B")

	entries := []planner.PreviewEntry{
		{SourcePath: filepath.Join(p.dir, "a.jpg"), OriginalName: "a.jpg", ProposedName: "b.jpg", Status: planner.StatusOK},
		{SourcePath: filepath.Join(p.dir, "b.jpg"), OriginalName: "b.jpg", ProposedName: "a.jpg", Status: planner.StatusOK},
	}

	if _, err := p.engine.ExecuteRename(context.Background(), entries, false); err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}

	for name, want := range map[string]string{"a.jpg": "B", "b.jpg": "A"} {
		got, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil || string(got) != want {
			t.Errorf("%s = %q (%v), want %q", name, got, err, want)
		}
	}
	for _, name := range p.names(t) {
		if strings.HasPrefix(name, ".renamr-tmp-") {
			t.Errorf("temp file left behind: %s", name)
		}
	}
}

func TestPipeline_TargetOutsideBatchIsKept(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "a.jpg", "A")
	p.writeFile(t, "b.jpg", "B")
	p.writeFile(t, "keep.jpg", "precious")

	entries := []planner.PreviewEntry{
		{SourcePath: filepath.Join(p.dir, "a.jpg"), OriginalName: "a.jpg", ProposedName: "x.jpg", Status: planner.StatusOK},
		{SourcePath: filepath.Join(p.dir, "b.jpg"), OriginalName: "b.jpg", ProposedName: "keep.jpg", Status: planner.StatusOK},
	}

	count, err := p.engine.ExecuteRename(context.Background(), entries, false)
	if !errors.Is(err, engine.ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 committed rename, got %d", count)
	}

	got, _ := os.ReadFile(filepath.Join(p.dir, "keep.jpg"))
	if string(got) != "precious" {
		t.Errorf("keep.jpg was overwritten: %q", got)
	}
	if diff := cmp.Diff([]string{"b.jpg", "keep.jpg", "x.jpg"}, p.names(t)); diff != "" {
		t.Errorf("after failed batch (-want +got):\n%s", diff)
	}
}

func TestPipeline_UndoInLaterProcess(t *testing.T) {
	first := setupPipeline(t)
	first.writeFile(t, "img1.jpg", "")
	first.writeFile(t, "img2.jpg", "")
	ctx := context.Background()

	rules := planner.DefaultRules()
	rules.Prefix = "trip"
	if _, err := first.engine.ExecuteRename(ctx, first.preview(t, rules, imageExts...), false); err != nil {
		t.Fatalf("ExecuteRename() error = %v", err)
	}
	first.save(t)

	second := newPipeline(t, first.dir, first.store.Path())
	if second.engine.History().Len() != 1 {
		t.Fatalf("expected 1 persisted log, got %d", second.engine.History().Len())
	}

	if _, err := second.engine.UndoLastOperation(ctx); err != nil {
		t.Fatalf("UndoLastOperation() error = %v", err)
	}
	second.save(t)

	if diff := cmp.Diff([]string{"img1.jpg", "img2.jpg"}, second.names(t)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}

	third := newPipeline(t, first.dir, first.store.Path())
	if _, err := third.engine.UndoLastOperation(ctx); !errors.Is(err, engine.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo after the log was consumed, got %v", err)
	}
}

func TestPipeline_UndoPopsLatestBatchOnly(t *testing.T) {
	p := setupPipeline(t)
	p.writeFile(t, "img1.jpg", "")
	ctx := context.Background()

	first := planner.DefaultRules()
	first.Prefix = "one"
	if _, err := p.engine.ExecuteRename(ctx, p.preview(t, first, imageExts...), false); err != nil {
		t.Fatalf("first ExecuteRename() error = %v", err)
	}

	second := planner.DefaultRules()
	second.Prefix = "two"
	if _, err := p.engine.ExecuteRename(ctx, p.preview(t, second, imageExts...), false); err != nil {
		t.Fatalf("second ExecuteRename() error = %v", err)
	}

	logs := p.engine.History().Logs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if !logs[0].CreatedAt.Before(logs[1].CreatedAt) {
		t.Errorf("logs out of order: %v then %v", logs[0].CreatedAt, logs[1].CreatedAt)
	}

	if _, err := p.engine.UndoLastOperation(ctx); err != nil {
		t.Fatalf("UndoLastOperation() error = %v", err)
	}
	if diff := cmp.Diff([]string{"one_001.jpg"}, p.names(t)); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}
	if p.engine.History().Len() != 1 {
		t.Errorf("expected 1 log left, got %d", p.engine.History().Len())
	}
}
