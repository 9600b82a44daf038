// Package cache keeps fabricated scan results for the lifetime of the
// embedding process. There is no eviction, TTL or size bound.
package cache

import (
	"errors"
	"sync"

	"github.com/capsaicin/mockscan/internal/model"
)

// ErrNoResult is reported when a compute returns neither a value nor an
// error, or panics before returning.
var ErrNoResult = errors.New("cache: compute produced no result")

// ComputeFunc produces the value for a missing key.
type ComputeFunc func() (*model.ScanResult, error)

type call struct {
	wg  sync.WaitGroup
	val *model.ScanResult
	err error
}

// Store maps a normalized URL to the first result computed for it. At most
// one value is ever stored per key, and concurrent misses on the same key
// share a single ComputeFunc invocation.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]*model.ScanResult
	inflight map[string]*call
}

func New() *Store {
	return &Store{
		entries:  make(map[string]*model.ScanResult),
		inflight: make(map[string]*call),
	}
}

func (s *Store) Get(key string) (*model.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.entries[key]
	return res, ok
}

// GetOrCompute returns the stored value for key, or runs compute and stores
// its result. hit reports whether compute was skipped for this caller. A
// failing compute stores nothing, and its error is handed to every caller
// that waited on it.
func (s *Store) GetOrCompute(key string, compute ComputeFunc) (res *model.ScanResult, hit bool, err error) {
	s.mu.Lock()
	if res, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return res, true, nil
	}
	if c, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err == nil, c.err
	}
	c := &call{}
	c.wg.Add(1)
	s.inflight[key] = c
	s.mu.Unlock()

	defer func() {
		if c.val == nil && c.err == nil {
			c.err = ErrNoResult
		}
		s.mu.Lock()
		if c.err == nil {
			s.entries[key] = c.val
		}
		delete(s.inflight, key)
		s.mu.Unlock()
		c.wg.Done()
	}()

	c.val, c.err = compute()
	if c.val == nil && c.err == nil {
		c.err = ErrNoResult
	}
	return c.val, false, c.err
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Keys returns the cached normalized URLs in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
