package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/capsaicin/mockscan/internal/cache"
	"github.com/capsaicin/mockscan/internal/config"
	"github.com/capsaicin/mockscan/internal/detection"
	"github.com/capsaicin/mockscan/internal/model"
	"github.com/capsaicin/mockscan/internal/prng"
)

// ResultStore is the cache the engine reads and populates.
type ResultStore interface {
	Get(key string) (*model.ScanResult, bool)
	GetOrCompute(key string, compute cache.ComputeFunc) (*model.ScanResult, bool, error)
}

// Observer is told about every finished scan, successful or not.
type Observer interface {
	ObserveScan(o Outcome)
}

type Option func(*Engine)

func WithStore(s ResultStore) Option {
	return func(e *Engine) { e.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

func WithSimulator(s *Simulator) Option {
	return func(e *Engine) { e.sim = s }
}

func WithLimiter(l *Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// WithSourceFactory replaces the per-scan generator. Results only match
// previously recorded ones with the default LCG.
func WithSourceFactory(f func(seed int64) prng.Source) Option {
	return func(e *Engine) { e.newSource = f }
}

type Engine struct {
	config    config.Config
	store     ResultStore
	sim       *Simulator
	limiter   *Limiter
	logger    *slog.Logger
	observer  Observer
	newSource func(seed int64) prng.Source
	stats     *Stats
}

func NewEngine(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		config:    cfg,
		store:     cache.New(),
		sim:       NewSimulator(cfg.TimeScale, nil),
		limiter:   NewLimiter(cfg.RateLimit),
		logger:    slog.Default(),
		newSource: func(seed int64) prng.Source { return prng.NewLCG(seed) },
		stats:     NewStats(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns the counters accumulated over the engine's lifetime.
func (e *Engine) Stats() *Stats {
	return e.stats
}

// Normalize lower-cases and trims raw the way cache keys and seeds expect.
func Normalize(raw string) string {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	return cases.Lower(language.Und).String(trimmed)
}

// Scan fabricates the result for rawURL, calling onProgress after each
// simulated step. onProgress may be nil.
func (e *Engine) Scan(ctx context.Context, rawURL string, onProgress func(Progress)) (*model.ScanResult, error) {
	o := e.Execute(ctx, rawURL, onProgress)
	return o.Result, o.Err
}

// Execute is Scan with the bookkeeping needed for reports.
func (e *Engine) Execute(ctx context.Context, rawURL string, onProgress func(Progress)) Outcome {
	return e.execute(ctx, rawURL, onProgress, nil)
}

func (e *Engine) execute(ctx context.Context, rawURL string, onProgress func(Progress), run *Stats) Outcome {
	start := time.Now()
	normalized := Normalize(rawURL)
	o := Outcome{
		Target:     rawURL,
		Normalized: normalized,
		Seed:       prng.Seed(normalized),
	}

	o.Result, o.Cached, o.Simulated, o.Err = e.scan(ctx, normalized, o.Seed, onProgress)
	o.Elapsed = time.Since(start)

	if errors.Is(o.Err, ErrScanGenerationFailed) {
		e.logger.Error("scan generation failed", slog.String("url", normalized), slog.String("error", o.Err.Error()))
	}

	e.stats.Record(o)
	if run != nil {
		run.Record(o)
	}
	if e.observer != nil {
		e.observer.ObserveScan(o)
	}
	return o
}

func (e *Engine) scan(ctx context.Context, normalized string, seed int64, onProgress func(Progress)) (*model.ScanResult, bool, time.Duration, error) {
	if err := e.limiter.Wait(ctx, normalized); err != nil {
		return nil, false, 0, err
	}

	if cached, ok := e.store.Get(normalized); ok {
		e.logger.Debug("cache hit", slog.String("url", normalized))
		if err := e.sim.Run(ctx, CachedDuration, onProgress); err != nil {
			return nil, true, CachedDuration, err
		}
		return cached.Clone(), true, CachedDuration, nil
	}

	src := e.newSource(seed)

	var simulated time.Duration
	if err := guard(func() {
		simulated = time.Duration(prng.Count(src, minScanMillis, maxScanMillis)) * time.Millisecond
	}); err != nil {
		return nil, false, 0, err
	}
	e.logger.Debug("cache miss", slog.String("url", normalized), slog.Int64("seed", seed), slog.Duration("simulated", simulated))

	if err := e.sim.Run(ctx, simulated, onProgress); err != nil {
		return nil, false, simulated, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, simulated, err
	}

	res, hit, err := e.store.GetOrCompute(normalized, func() (*model.ScanResult, error) {
		return generate(src, normalized)
	})
	if err != nil {
		if !errors.Is(err, ErrScanGenerationFailed) {
			err = fmt.Errorf("%w: %v", ErrScanGenerationFailed, err)
		}
		return nil, false, simulated, err
	}
	return res.Clone(), hit, simulated, nil
}

// generate continues drawing from src after the duration draw: discovery
// first, then assignment.
func generate(src prng.Source, normalized string) (res *model.ScanResult, err error) {
	err = guard(func() {
		discovered := detection.Discover(src, normalized)
		res = &model.ScanResult{
			DiscoveredURLs:  discovered,
			Vulnerabilities: detection.Assign(src, normalized, discovered),
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScanGenerationFailed, r)
		}
	}()
	fn()
	return nil
}
