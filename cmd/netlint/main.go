package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"netlint/internal/config"
	"netlint/internal/observability"
	"netlint/internal/report"
)

var (
	configPath = flag.String("config", "./netlint.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single analysis and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	sarifPath  = flag.String("sarif", "", "Write a SARIF report to this path (overrides config)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

const version = "1.0.0"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("netlint v%s\n", version)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && *configPath == "./netlint.toml" {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.InputPaths = flag.Args()
	}
	if *sarifPath != "" {
		cfg.Output.SARIF = *sarifPath
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observ.OTLPEndpoint, version)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.LoadUnits(); err != nil {
		slog.Error("initial load failed", "error", err)
		os.Exit(1)
	}

	diags, failed, err := app.RunAnalysis(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
	if failed > 0 {
		slog.Warn("some units could not be fully analyzed", "failed", failed)
	}
	if err := app.WriteOutputs(diags); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}
	app.RecordHistory(diags)

	if !*ui {
		fmt.Print(report.Summary(app.UnitCount(), diags))
	}

	if *once {
		if hasWarnings(diags) {
			os.Exit(2)
		}
		os.Exit(0)
	}

	// Watch mode
	if cfg.Observ.Listen != "" {
		server := observability.NewServer(cfg.Observ.Listen, app.Health)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer server.Stop(ctx)
	}

	if err := app.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(diags, failed); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "netlint", "netlint.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "netlint", "netlint.log")
	}

	return "netlint.log"
}
