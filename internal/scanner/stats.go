package scanner

import (
	"errors"
	"sync/atomic"
	"time"
)

type Stats struct {
	Total     int64
	Processed int64
	CacheHits int64
	Computed  int64
	Failed    int64
	Cancelled int64
	Findings  int64
	StartTime time.Time
}

func NewStats(initialTotal int64) *Stats {
	return &Stats{
		Total:     initialTotal,
		StartTime: time.Now(),
	}
}

// Record folds one outcome into the counters.
func (s *Stats) Record(o Outcome) {
	s.IncrementProcessed()
	switch {
	case o.Err == nil && o.Cached:
		s.IncrementCacheHits()
	case o.Err == nil:
		s.IncrementComputed()
	case errors.Is(o.Err, ErrScanGenerationFailed):
		s.IncrementFailed()
	default:
		s.IncrementCancelled()
	}
	if o.Result != nil {
		atomic.AddInt64(&s.Findings, int64(o.Result.FindingCount()))
	}
}

func (s *Stats) IncrementProcessed() {
	atomic.AddInt64(&s.Processed, 1)
}

func (s *Stats) IncrementCacheHits() {
	atomic.AddInt64(&s.CacheHits, 1)
}

func (s *Stats) IncrementComputed() {
	atomic.AddInt64(&s.Computed, 1)
}

func (s *Stats) IncrementFailed() {
	atomic.AddInt64(&s.Failed, 1)
}

func (s *Stats) IncrementCancelled() {
	atomic.AddInt64(&s.Cancelled, 1)
}

func (s *Stats) IncrementTotal(delta int64) {
	atomic.AddInt64(&s.Total, delta)
}

func (s *Stats) GetProcessed() int64 {
	return atomic.LoadInt64(&s.Processed)
}

func (s *Stats) GetCacheHits() int64 {
	return atomic.LoadInt64(&s.CacheHits)
}

func (s *Stats) GetComputed() int64 {
	return atomic.LoadInt64(&s.Computed)
}

func (s *Stats) GetFailed() int64 {
	return atomic.LoadInt64(&s.Failed)
}

func (s *Stats) GetCancelled() int64 {
	return atomic.LoadInt64(&s.Cancelled)
}

func (s *Stats) GetFindings() int64 {
	return atomic.LoadInt64(&s.Findings)
}

func (s *Stats) GetTotal() int64 {
	return atomic.LoadInt64(&s.Total)
}
