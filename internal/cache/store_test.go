package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsaicin/mockscan/internal/model"
)

func sample(url string) *model.ScanResult {
	return &model.ScanResult{
		DiscoveredURLs: []model.DiscoveredURL{{URL: url, Index: 1}},
	}
}

func TestStore_GetOrCompute_MissThenHit(t *testing.T) {
	s := New()
	calls := 0
	compute := func() (*model.ScanResult, error) {
		calls++
		return sample("https://a.test"), nil
	}

	first, hit, err := s.GetOrCompute("https://a.test", compute)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := s.GetOrCompute("https://a.test", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}

func TestStore_FailureNotStored(t *testing.T) {
	s := New()
	boom := errors.New("boom")

	_, _, err := s.GetOrCompute("k", func() (*model.ScanResult, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	res, hit, err := s.GetOrCompute("k", func() (*model.ScanResult, error) { return sample("k"), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "k", res.DiscoveredURLs[0].URL)
}

func TestStore_NilResult(t *testing.T) {
	s := New()
	_, _, err := s.GetOrCompute("k", func() (*model.ScanResult, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNoResult)
	assert.Equal(t, 0, s.Len())
}

func TestStore_PanicLeavesStoreUsable(t *testing.T) {
	s := New()
	assert.Panics(t, func() {
		s.GetOrCompute("k", func() (*model.ScanResult, error) { panic("bad") })
	})
	res, hit, err := s.GetOrCompute("k", func() (*model.ScanResult, error) { return sample("k"), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, res)
}

func TestStore_ConcurrentMissesComputeOnce(t *testing.T) {
	s := New()
	var calls int32
	release := make(chan struct{})

	compute := func() (*model.ScanResult, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sample("https://a.test"), nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*model.ScanResult, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _, err := s.GetOrCompute("https://a.test", compute)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestStore_IndependentKeys(t *testing.T) {
	s := New()
	for _, k := range []string{"a", "b", "c"} {
		_, _, err := s.GetOrCompute(k, func() (*model.ScanResult, error) { return sample(k), nil })
		require.NoError(t, err)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, s.Keys())
}
