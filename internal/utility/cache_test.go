package utility

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCache_GetOrCompute_WithinTTL(t *testing.T) {
	clock := newClock()
	c := NewCache(300*time.Second, WithClock(clock.Now))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	first, err := c.GetOrCompute("user_analytics_30", 0, compute)
	require.NoError(t, err)

	clock.Advance(299 * time.Second)
	second, err := c.GetOrCompute("user_analytics_30", 0, compute)
	require.NoError(t, err)

	assert.Equal(t, first, second, "trong TTL phải trả payload cũ")
	assert.Equal(t, 1, calls)
}

func TestCache_GetOrCompute_RecomputesAfterTTL(t *testing.T) {
	clock := newClock()
	c := NewCache(300*time.Second, WithClock(clock.Now))

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, _ = c.GetOrCompute("sales_analytics_7", 0, compute)
	clock.Advance(300 * time.Second)
	v, err := c.GetOrCompute("sales_analytics_7", 0, compute)
	require.NoError(t, err)

	assert.Equal(t, 2, v, "now - cachedAt == ttl thì entry đã hết hạn")
	assert.Equal(t, 1, c.Len(), "entry cũ bị ghi đè chứ không tăng thêm")
}

func TestCache_GetOrCompute_ErrorNotCached(t *testing.T) {
	c := NewCache(time.Minute)
	boom := errors.New("mongo down")

	_, err := c.GetOrCompute("k", 0, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("k", 0, func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCache_Observer(t *testing.T) {
	var hits, misses int
	c := NewCache(time.Minute, WithObserver(
		func(string) { hits++ },
		func(string) { misses++ },
	))

	for i := 0; i < 3; i++ {
		_, _ = c.GetOrCompute("k", 0, func() (any, error) { return 1, nil })
	}
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}

func TestCache_SingleFlight(t *testing.T) {
	c := NewCache(time.Minute, WithSingleFlight())

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (any, error) {
		calls.Add(1)
		<-release
		return "report", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrCompute("marketplace_analytics_30", 0, compute)
		}(i)
	}

	// Chờ lần tính đầu tiên bắt đầu rồi mới thả
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "report", r)
	}
	assert.Equal(t, int32(1), calls.Load(), "singleflight gộp các lần gọi đang chờ")
}

func TestCache_PurgeAndTypedHelper(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("n", 42)

	n, err := GetOrComputeAs(c, "n", 0, func() (int, error) { return 0, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = GetOrComputeAs(c, "n", 0, func() (string, error) { return "", nil })
	assert.Error(t, err, "sai kiểu phải báo lỗi")

	c.Purge()
	_, ok := c.Get("n")
	assert.False(t, ok)
}

func TestCache_Refresh(t *testing.T) {
	clock := newClock()
	c := NewCache(300*time.Second, WithClock(clock.Now), WithSingleFlight())

	calls := 0
	compute := func() (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.GetOrCompute("user_analytics_30", 0, compute)
	require.NoError(t, err)

	t.Run("tính lại dù entry còn hạn", func(t *testing.T) {
		clock.Advance(240 * time.Second)
		v, err := c.Refresh("user_analytics_30", compute)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("hạn được tính lại từ lúc refresh", func(t *testing.T) {
		clock.Advance(90 * time.Second)
		v, ok := c.Get("user_analytics_30")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("lỗi thì giữ entry cũ", func(t *testing.T) {
		boom := errors.New("mongo down")
		_, err := RefreshAs(c, "user_analytics_30", func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)

		v, ok := c.Get("user_analytics_30")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})
}
