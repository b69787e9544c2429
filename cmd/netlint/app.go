package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"netlint/internal/analysis"
	"netlint/internal/config"
	"netlint/internal/history"
	"netlint/internal/loader"
	"netlint/internal/observability"
	"netlint/internal/report"
	"netlint/internal/rules"
	"netlint/internal/watcher"
)

type App struct {
	Config *config.Config
	Engine *analysis.Engine

	store      *history.Store
	watch      *watcher.Watcher
	teaProgram *tea.Program

	mu            sync.Mutex
	units         []*loader.Unit
	lastDiags     []analysis.Diagnostic
	lastRunFailed bool
}

func NewApp(cfg *config.Config) (*App, error) {
	engine := analysis.NewEngine()
	for _, r := range rules.All(cfg.LiteralSettings()) {
		if cfg.RuleDisabled(r.Info().ID) {
			continue
		}
		engine.Register(r)
	}

	app := &App{Config: cfg, Engine: engine}

	if cfg.History.DB != "" {
		store, err := history.Open(cfg.History.DB)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		app.store = store
	}

	return app, nil
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}
	if a.watch != nil {
		_ = a.watch.Close()
	}
}

// LoadUnits scans the input paths and decodes every compilation unit found.
func (a *App) LoadUnits() error {
	files, err := loader.ScanDirectories(a.Config.InputPaths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}

	units := make([]*loader.Unit, 0, len(files))
	for _, path := range files {
		unit, err := loader.LoadFile(path)
		if err != nil {
			slog.Warn("failed to load unit", "path", path, "error", err)
			continue
		}
		units = append(units, unit)
	}

	a.mu.Lock()
	a.units = units
	a.mu.Unlock()
	observability.UnitsLoaded.Set(float64(len(units)))

	return nil
}

// RunAnalysis analyzes every loaded unit, in parallel across units. Units
// that fail (rule fault) contribute no diagnostics and are counted in
// failed; diagnostics from the remaining units are still returned.
func (a *App) RunAnalysis(ctx context.Context) (diags []analysis.Diagnostic, failed int, err error) {
	a.mu.Lock()
	units := a.units
	a.mu.Unlock()

	sink := analysis.NewSink()
	var wg sync.WaitGroup
	var failMu sync.Mutex

	for _, unit := range units {
		wg.Add(1)
		go func(u *loader.Unit) {
			defer wg.Done()
			unitDiags, unitErr := a.Engine.Analyze(ctx, u.Tree, u.Symbols)
			if unitErr != nil {
				slog.Error("unit analysis aborted", "unit", u.Path, "error", unitErr)
				failMu.Lock()
				failed++
				failMu.Unlock()
				return
			}
			sink.Append(unitDiags...)
		}(unit)
	}
	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, 0, ctxErr
	}

	a.mu.Lock()
	a.lastDiags = sink.Diagnostics()
	a.lastRunFailed = failed > 0
	diags = a.lastDiags
	a.mu.Unlock()

	return diags, failed, nil
}

// WriteOutputs emits the configured artifacts for a finished run.
func (a *App) WriteOutputs(diags []analysis.Diagnostic) error {
	if a.Config.Output.SARIF == "" {
		return nil
	}

	infos := make([]analysis.RuleInfo, 0, len(a.Engine.Rules()))
	for _, r := range a.Engine.Rules() {
		infos = append(infos, r.Info())
	}

	cwd, _ := os.Getwd()
	data, err := report.GenerateSARIF(cwd, version, infos, diags)
	if err != nil {
		return fmt.Errorf("generate SARIF: %w", err)
	}
	if err := os.WriteFile(a.Config.Output.SARIF, data, 0o644); err != nil {
		return fmt.Errorf("write SARIF: %w", err)
	}
	return nil
}

// RecordHistory stores the run summary when a history DB is configured.
func (a *App) RecordHistory(diags []analysis.Diagnostic) {
	if a.store == nil {
		return
	}
	a.mu.Lock()
	unitCount := len(a.units)
	a.mu.Unlock()

	id, err := a.store.RecordRun(unitCount, diags)
	if err != nil {
		slog.Warn("failed to record run history", "error", err)
		return
	}
	slog.Debug("run recorded", "run_id", id)
}

// StartWatcher re-runs the full pipeline whenever unit files change.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.New(
		a.Config.Watch.Debounce,
		a.Config.Watch.RescansPerSec,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(changed []string) {
			slog.Info("unit files changed, re-analyzing", "count", len(changed))
			a.Rescan(ctx)
		},
	)
	if err != nil {
		return err
	}
	a.watch = w
	return w.Watch(a.Config.InputPaths)
}

// Rescan reloads all units, re-runs analysis and refreshes the outputs.
func (a *App) Rescan(ctx context.Context) {
	if err := a.LoadUnits(); err != nil {
		slog.Error("reload failed", "error", err)
		return
	}
	diags, failed, err := a.RunAnalysis(ctx)
	if err != nil {
		slog.Error("re-analysis failed", "error", err)
		return
	}
	if failed > 0 {
		slog.Warn("some units could not be fully analyzed", "failed", failed)
	}
	if err := a.WriteOutputs(diags); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}
	a.RecordHistory(diags)

	a.mu.Lock()
	program := a.teaProgram
	unitCount := len(a.units)
	a.mu.Unlock()
	if program != nil {
		program.Send(updateMsg{diags: diags, unitCount: unitCount, failed: failed})
	}
}

// UnitCount returns the number of currently loaded compilation units.
func (a *App) UnitCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.units)
}

func hasWarnings(diags []analysis.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= analysis.SeverityWarning {
			return true
		}
	}
	return false
}

// Health backs the observability server's /health endpoint.
func (a *App) Health(ctx context.Context) observability.HealthStatus {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := "up"
	if a.lastRunFailed {
		status = "degraded"
	}
	return observability.HealthStatus{
		Status:         status,
		UnitsLoaded:    len(a.units),
		LastRunFailed:  a.lastRunFailed,
		DiagnosticsLen: len(a.lastDiags),
	}
}
