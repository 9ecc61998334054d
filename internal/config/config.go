package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "SCHEDVIZ_"

// Config defines client configuration.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Workload WorkloadConfig `yaml:"workload"`
	Export   ExportConfig   `yaml:"export"`
	Prefs    PrefsConfig    `yaml:"prefs"`
	Log      LogConfig      `yaml:"log"`
}

type SolverConfig struct {
	URL       string        `yaml:"url"`
	Scheduler string        `yaml:"scheduler"`
	Token     string        `yaml:"token"`
	// Timeout is opt-in; zero leaves solver requests unbounded.
	Timeout   time.Duration `yaml:"timeout"`
	Verbose   bool          `yaml:"verbose"`
}

type WorkloadConfig struct {
	// File is a YAML or JSON job list. When empty, random jobs are generated.
	File     string `yaml:"file"`
	Jobs     int    `yaml:"jobs"`
	Machines int    `yaml:"machines"`
	Seed     int64  `yaml:"seed"`
}

type ExportConfig struct {
	Dir       string        `yaml:"dir"`
	TTL       time.Duration `yaml:"ttl"`
	MaxSizeMB int           `yaml:"max_size_mb"`
}

type PrefsConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	base = filepath.Join(base, "schedviz")
	return Config{
		Solver: SolverConfig{
			URL:       "http://localhost:5000",
			Scheduler: "gbfs",
		},
		Workload: WorkloadConfig{
			Jobs:     5,
			Machines: 2,
		},
		Export: ExportConfig{
			Dir:       filepath.Join(base, "exports"),
			TTL:       30 * 24 * time.Hour,
			MaxSizeMB: 100,
		},
		Prefs: PrefsConfig{
			Path: filepath.Join(base, "prefs.db"),
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(os.TempDir(), "schedviz.log"),
		},
	}
}

// Load applies defaults, then the YAML file at path (or SCHEDVIZ_CONFIG_PATH
// when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"SOLVER_URL":    &cfg.Solver.URL,
		"SCHEDULER":     &cfg.Solver.Scheduler,
		"SOLVER_TOKEN":  &cfg.Solver.Token,
		"WORKLOAD_FILE": &cfg.Workload.File,
		"EXPORT_DIR":    &cfg.Export.Dir,
		"PREFS_PATH":    &cfg.Prefs.Path,
		"LOG_LEVEL":     &cfg.Log.Level,
		"LOG_PATH":      &cfg.Log.Path,
	}
	for key, dst := range str {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORKLOAD_JOBS":      &cfg.Workload.Jobs,
		"WORKLOAD_MACHINES":  &cfg.Workload.Machines,
		"EXPORT_MAX_SIZE_MB": &cfg.Export.MaxSizeMB,
	}
	for key, dst := range ints {
		if v := os.Getenv(envPrefix + key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"SOLVER_TIMEOUT": &cfg.Solver.Timeout,
		"EXPORT_TTL":     &cfg.Export.TTL,
	}
	for key, dst := range durations {
		if v := os.Getenv(envPrefix + key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv(envPrefix + "SOLVER_VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSOLVER_VERBOSE: %w", envPrefix, err)
		}
		cfg.Solver.Verbose = b
	}
	if v := os.Getenv(envPrefix + "WORKLOAD_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sWORKLOAD_SEED: %w", envPrefix, err)
		}
		cfg.Workload.Seed = n
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Schedulers lists the scheduler types the solver understands.
var Schedulers = []string{"gbfs", "astar"}

func (c Config) Validate() error {
	u, err := url.Parse(c.Solver.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("solver url %q must be an absolute http(s) url (use -url)", c.Solver.URL)
	}
	known := false
	for _, s := range Schedulers {
		if c.Solver.Scheduler == s {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown scheduler %q (want one of %v)", c.Solver.Scheduler, Schedulers)
	}
	if c.Workload.File == "" && (c.Workload.Jobs < 1 || c.Workload.Machines < 1) {
		return fmt.Errorf("workload needs at least 1 job and 1 machine")
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver timeout must not be negative")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export dir is required")
	}
	if c.Export.MaxSizeMB < 0 {
		return fmt.Errorf("export max size must not be negative")
	}
	return nil
}
