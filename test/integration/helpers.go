package integration

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/danieljhkim/renamr/internal/clock"
	"github.com/danieljhkim/renamr/internal/engine"
	"github.com/danieljhkim/renamr/internal/fsops"
	"github.com/danieljhkim/renamr/internal/imagemeta"
	"github.com/danieljhkim/renamr/internal/planner"
	"github.com/danieljhkim/renamr/internal/scan"
	"github.com/danieljhkim/renamr/internal/state"
)

// pipeline wires the planner, engine and history store against a real
// directory, the way the CLI does for one process.
type pipeline struct {
	dir     string
	planner *planner.Planner
	engine  *engine.Engine
	store   *state.FileHistoryStore
}

// newPipeline creates a pipeline for dir whose history lives in historyPath,
// loading whatever an earlier pipeline saved there.
func newPipeline(t *testing.T, dir, historyPath string) *pipeline {
	t.Helper()
	fs := fsops.NewRealFS()
	clk := clock.NewSteppingClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)
	store := state.NewFileHistoryStore(fs, clk, historyPath)

	logs, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}

	return &pipeline{
		dir:     dir,
		planner: planner.New(imagemeta.NewFileReader(), nil),
		engine:  engine.New(fs, clk, engine.NewHistory(logs...), nil),
		store:   store,
	}
}

// setupPipeline creates a fresh photo directory and history file.
func setupPipeline(t *testing.T) *pipeline {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "album")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	return newPipeline(t, dir, filepath.Join(t.TempDir(), "history.json"))
}

// preview scans the directory with the given extension allow-list.
func (p *pipeline) preview(t *testing.T, rules planner.RuleConfig, exts ...string) []planner.PreviewEntry {
	t.Helper()
	files, err := scan.ListFiles(p.dir, exts)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}
	return p.planner.GeneratePreview(files, rules)
}

func (p *pipeline) save(t *testing.T) {
	t.Helper()
	if err := p.store.Save(p.engine.History().Logs()); err != nil {
		t.Fatalf("failed to save history: %v", err)
	}
}

func (p *pipeline) writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(p.dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// writePNG writes a solid w x h PNG and sets its modification time.
func (p *pipeline) writePNG(t *testing.T, name string, w, h int, mtime time.Time) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}

	path := filepath.Join(p.dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}
}

// names returns the sorted file names in the pipeline's directory.
func (p *pipeline) names(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}
