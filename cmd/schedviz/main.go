package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/browser"

	"github.com/altinukshini/schedviz/internal/api"
	"github.com/altinukshini/schedviz/internal/config"
	"github.com/altinukshini/schedviz/internal/export"
	"github.com/altinukshini/schedviz/internal/ingest"
	"github.com/altinukshini/schedviz/internal/prefs"
	"github.com/altinukshini/schedviz/internal/present"
	"github.com/altinukshini/schedviz/internal/tui"
	"github.com/altinukshini/schedviz/internal/tui/charts"
	"github.com/altinukshini/schedviz/internal/workload"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	solverURL := flag.String("url", "", "Solver base URL (default http://localhost:5000)")
	scheduler := flag.String("scheduler", "", "Initial scheduler: "+strings.Join(config.Schedulers, ", "))
	jobs := flag.Int("jobs", 0, "Number of random jobs to generate")
	machines := flag.Int("machines", 0, "Number of machines")
	workloadFile := flag.String("workload", "", "YAML or JSON job list to load instead of random jobs")
	seed := flag.Int64("seed", 0, "Seed for random jobs (0 picks one)")
	verbose := flag.Bool("verbose", false, "Trace solver HTTP traffic to the log file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("schedviz", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *solverURL != "" {
		cfg.Solver.URL = *solverURL
	}
	if *scheduler != "" {
		cfg.Solver.Scheduler = *scheduler
	}
	if *jobs > 0 {
		cfg.Workload.Jobs = *jobs
	}
	if *machines > 0 {
		cfg.Workload.Machines = *machines
	}
	if *workloadFile != "" {
		cfg.Workload.File = *workloadFile
	}
	if *seed != 0 {
		cfg.Workload.Seed = *seed
	}
	if *verbose {
		cfg.Solver.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logOut, err := openLog(cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Log error: %v\n", err)
		os.Exit(1)
	}
	defer logOut.Close()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	logger.Info("starting", "version", version, "solver", cfg.Solver.URL, "scheduler", cfg.Solver.Scheduler)

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.Solver.URL,
		Token:   cfg.Solver.Token,
		Timeout: cfg.Solver.Timeout,
		HTTPLog: logOut,
		Verbose: cfg.Solver.Verbose,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Solver error: %v\n", err)
		os.Exit(1)
	}

	store, err := export.NewStore(cfg.Export.Dir, cfg.Export.MaxSizeMB, cfg.Export.TTL, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export error: %v\n", err)
		os.Exit(1)
	}
	if n, err := store.Evict(); err != nil {
		logger.Warn("evict exports", "error", err)
	} else if n > 0 {
		logger.Info("evicted exports", "count", n)
	}

	// Without a preference store the theme starts light and is not saved.
	var prefStore present.PreferenceStore
	if ps, err := prefs.Open(cfg.Prefs.Path); err != nil {
		logger.Warn("open preferences", "path", cfg.Prefs.Path, "error", err)
	} else {
		defer ps.Close()
		prefStore = ps
	}

	rng := workload.NewRand(cfg.Workload.Seed)
	w, err := loadWorkload(cfg.Workload, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Workload error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend := charts.NewBackend(logger)
	manager := present.NewManager(ctx, backend, prefStore, logger)
	defer manager.Close()

	app := tui.NewApp(tui.Options{
		Solver:    client,
		Manager:   manager,
		Ingestor:  ingest.New(manager, logger),
		Exports:   store,
		Workload:  w,
		Scheduler: cfg.Solver.Scheduler,
		Rand:      rng,
		Browser:   browser.New("", io.Discard, logOut),
		Logger:    logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadWorkload(cfg config.WorkloadConfig, rng *rand.Rand) (workload.Workload, error) {
	if cfg.File == "" {
		return workload.Random(cfg.Jobs, cfg.Machines, rng), nil
	}
	return workload.Load(cfg.File)
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
