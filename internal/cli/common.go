package cli

import (
	"encoding/json"
	"fmt"

	"github.com/danieljhkim/renamr/internal/clock"
	"github.com/danieljhkim/renamr/internal/config"
	"github.com/danieljhkim/renamr/internal/engine"
	"github.com/danieljhkim/renamr/internal/fsops"
	"github.com/danieljhkim/renamr/internal/imagemeta"
	"github.com/danieljhkim/renamr/internal/planner"
	"github.com/danieljhkim/renamr/internal/scan"
	"github.com/danieljhkim/renamr/internal/state"
)

// session bundles the collaborators one command needs.
type session struct {
	cfg    *config.Config
	store  state.HistoryStore
	engine *engine.Engine
}

// newSession wires real implementations of all dependencies and loads the
// persisted history into the engine.
func newSession() (*session, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	clk := &clock.RealClock{}
	store := state.NewFileHistoryStore(fs, clk, paths.History)

	logs, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		store:  store,
		engine: engine.New(fs, clk, engine.NewHistory(logs...), logger),
	}, nil
}

// preview scans dir and derives a proposed name for every matching file.
// Image files are only opened when the mode reads metadata.
func (s *session) preview(dir string, rules planner.RuleConfig, exts []string) ([]planner.PreviewEntry, error) {
	files, err := scan.ListFiles(dir, exts)
	if err != nil {
		return nil, err
	}

	var meta planner.MetadataReader
	if rules.Mode.IsMetadata() {
		meta = imagemeta.NewFileReader()
	}
	return planner.New(meta, logger).GeneratePreview(files, rules), nil
}

// saveHistory writes the engine's history stack back to disk.
func (s *session) saveHistory() error {
	return s.store.Save(s.engine.History().Logs())
}

// dirArg returns the directory argument, defaulting to the working directory.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
