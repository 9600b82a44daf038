package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TargetURL   string  `yaml:"target"`
	ConfigFile  string  `yaml:"-"`
	Threads     int     `yaml:"threads"`
	RateLimit   int     `yaml:"rate_limit"`
	TimeScale   float64 `yaml:"time_scale"`
	OutputFile  string  `yaml:"output"`
	HTMLReport  string  `yaml:"html"`
	Verbose     bool    `yaml:"verbose"`
	LogLevel    string  `yaml:"log_level"`
	MetricsAddr string  `yaml:"metrics_addr"`
	NoColor     bool    `yaml:"no_color"`
	DryRun      bool    `yaml:"dry_run"`
}

const defaultScheme = "https://"

func envOrDefault(envKey string, defaultVal int) int {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func envOrDefaultFloat(envKey string, defaultVal float64) float64 {
	if val := os.Getenv(envKey); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envOrDefaultStr(envKey string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return defaultVal
}

func Parse() Config {
	cfg, err := ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	return cfg
}

// ParseArgs resolves the configuration from args. Precedence, lowest first:
// built-in defaults, MOCKSCAN_* environment, the -config YAML file, flags.
func ParseArgs(args []string, stderr io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("mockscan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.TargetURL, "u", "", "Target URL (or use STDIN for multiple targets)")
	fs.StringVar(&cfg.ConfigFile, "config", envOrDefaultStr("MOCKSCAN_CONFIG", ""), "YAML config file")
	fs.IntVar(&cfg.Threads, "t", envOrDefault("MOCKSCAN_THREADS", 4), "Number of concurrent scans")
	fs.IntVar(&cfg.RateLimit, "rate-limit", envOrDefault("MOCKSCAN_RATE_LIMIT", 0), "Max scans started per second per host (0=unlimited)")
	fs.Float64Var(&cfg.TimeScale, "time-scale", envOrDefaultFloat("MOCKSCAN_TIME_SCALE", 1), "Multiplier for simulated scan time (0=instant)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Output file (JSON format)")
	fs.StringVar(&cfg.HTMLReport, "html", "", "Generate HTML report")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose mode")
	fs.StringVar(&cfg.LogLevel, "log-level", envOrDefaultStr("MOCKSCAN_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", envOrDefaultStr("MOCKSCAN_METRICS_ADDR", ""), "Serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Show normalized targets and seeds without scanning")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mockscan [options]\n\n")
		fmt.Fprintf(stderr, "Required:\n")
		fmt.Fprintf(stderr, "  -u string          Target URL (or pipe via STDIN)\n\n")
		fmt.Fprintf(stderr, "Optional:\n")
		fmt.Fprintf(stderr, "  -t int             Concurrent scans (default: 4, env: MOCKSCAN_THREADS)\n")
		fmt.Fprintf(stderr, "  --config path      YAML config file (env: MOCKSCAN_CONFIG)\n")
		fmt.Fprintf(stderr, "  --rate-limit int   Max scans/s per host (default: 0, env: MOCKSCAN_RATE_LIMIT)\n")
		fmt.Fprintf(stderr, "  --time-scale float Simulated time multiplier (default: 1, env: MOCKSCAN_TIME_SCALE)\n")
		fmt.Fprintf(stderr, "  --log-level str    Log level: debug|info|warn|error (default: info)\n")
		fmt.Fprintf(stderr, "  --metrics-addr str Prometheus listen address (env: MOCKSCAN_METRICS_ADDR)\n")
		fmt.Fprintf(stderr, "  --dry-run          Show scan plan without executing\n")
		fmt.Fprintf(stderr, "  --no-color         Disable colors\n")
		fmt.Fprintf(stderr, "  -v                 Verbose mode\n")
		fmt.Fprintf(stderr, "  -o string          JSON output file\n")
		fmt.Fprintf(stderr, "  --html string      HTML report file\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  mockscan -u example.com\n")
		fmt.Fprintf(stderr, "  cat targets.txt | mockscan -t 8 --time-scale 0.05 -o results.json\n")
		fmt.Fprintf(stderr, "  MOCKSCAN_TIME_SCALE=0 mockscan -u http://test.local --html report.html\n")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.ConfigFile != "" {
		fileCfg, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return cfg, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		merge(&cfg, fileCfg, explicit)
	}

	return cfg, nil
}

// LoadFile reads a YAML config file. Unset keys stay at their zero value.
func LoadFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// merge copies non-zero file values into cfg unless the matching flag was
// given on the command line.
func merge(cfg *Config, file Config, explicit map[string]bool) {
	if !explicit["u"] && file.TargetURL != "" {
		cfg.TargetURL = file.TargetURL
	}
	if !explicit["t"] && file.Threads != 0 {
		cfg.Threads = file.Threads
	}
	if !explicit["rate-limit"] && file.RateLimit != 0 {
		cfg.RateLimit = file.RateLimit
	}
	if !explicit["time-scale"] && file.TimeScale != 0 {
		cfg.TimeScale = file.TimeScale
	}
	if !explicit["o"] && file.OutputFile != "" {
		cfg.OutputFile = file.OutputFile
	}
	if !explicit["html"] && file.HTMLReport != "" {
		cfg.HTMLReport = file.HTMLReport
	}
	if !explicit["v"] && file.Verbose {
		cfg.Verbose = true
	}
	if !explicit["log-level"] && file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if !explicit["metrics-addr"] && file.MetricsAddr != "" {
		cfg.MetricsAddr = file.MetricsAddr
	}
	if !explicit["no-color"] && file.NoColor {
		cfg.NoColor = true
	}
	if !explicit["dry-run"] && file.DryRun {
		cfg.DryRun = true
	}
}

// NormalizeTargets prefixes https:// onto scheme-less targets in place and
// rejects anything that still doesn't parse into a URL with a host.
func NormalizeTargets(targets []string) error {
	for i := range targets {
		target := strings.TrimSpace(targets[i])
		lower := strings.ToLower(target)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			target = defaultScheme + target
		}
		u, err := url.Parse(target)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: %q. Use a URL like example.com or https://example.com", ErrInvalidTarget, targets[i])
		}
		targets[i] = target
	}
	return nil
}

func Validate(config *Config, targets []string) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: no targets specified. Use -u flag or pipe targets via STDIN", ErrInvalidConfig)
	}

	if err := NormalizeTargets(targets); err != nil {
		return err
	}

	if config.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d. Use -t to set (default: 4)", ErrInvalidConfig, config.Threads)
	}

	if config.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative, got %d", ErrInvalidConfig, config.RateLimit)
	}

	if config.TimeScale < 0 {
		return fmt.Errorf("%w: time scale must not be negative, got %g", ErrInvalidConfig, config.TimeScale)
	}

	if _, ok := logLevels[config.LogLevel]; !ok {
		return fmt.Errorf("%w: invalid log level %q. Valid values: debug, info, warn, error", ErrInvalidConfig, config.LogLevel)
	}

	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds a text logger at the named level. Unknown levels fall
// back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl, ok := logLevels[level]
	if !ok {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
