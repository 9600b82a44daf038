package scanner

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	// TotalSteps is the number of progress events a completed scan emits.
	TotalSteps = 8

	// CachedDuration is simulated for every cache hit regardless of seed.
	CachedDuration = 60 * time.Second

	minScanMillis = 60000
	maxScanMillis = 90000

	jitterLow   = 0.8
	jitterRange = 0.4
)

type Progress struct {
	Step  int `json:"step"`
	Total int `json:"total"`
}

func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Step) / float64(p.Total) * 100
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Simulator paces synthetic progress. Its jitter comes from a wall-clock
// seeded source, never from the per-URL generator, so the total duration of
// a scan is reproducible while the spacing between events is not.
type Simulator struct {
	scale float64
	sleep SleepFunc
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSimulator scales every wait by scale; 0 skips waiting entirely. A nil
// sleep uses a timer bound to the context.
func NewSimulator(scale float64, sleep SleepFunc) *Simulator {
	if sleep == nil {
		sleep = sleepContext
	}
	return &Simulator{
		scale: scale,
		sleep: sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulator) jitter() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return jitterLow + s.rng.Float64()*jitterRange
}

// Plan splits total into TotalSteps jittered, scaled waits.
func (s *Simulator) Plan(total time.Duration) []time.Duration {
	stepTime := float64(total) / TotalSteps
	waits := make([]time.Duration, TotalSteps)
	for i := range waits {
		waits[i] = time.Duration(stepTime * s.jitter() * s.scale)
	}
	return waits
}

// Run waits out total and calls onProgress after each step. Once ctx is
// done no further events are delivered and ctx.Err() is returned.
func (s *Simulator) Run(ctx context.Context, total time.Duration, onProgress func(Progress)) error {
	for i, wait := range s.Plan(total) {
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(Progress{Step: i + 1, Total: TotalSteps})
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
