package worker

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_analytics/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Output: "stdout", Format: "text", BufferSize: 100})
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

type fakeWarmer struct {
	mu          sync.Mutex
	days        []int
	fail        map[int]error
	panicOn     int
	hasDeadline bool
}

func (f *fakeWarmer) WarmUp(ctx context.Context, days int) error {
	f.mu.Lock()
	f.days = append(f.days, days)
	_, f.hasDeadline = ctx.Deadline()
	f.mu.Unlock()

	if days == f.panicOn {
		panic("store nil")
	}
	return f.fail[days]
}

func (f *fakeWarmer) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.days...)
}

func TestNewReportWarmupWorker(t *testing.T) {
	_, err := NewReportWarmupWorker(nil, "@every 1m", nil, 0)
	assert.Error(t, err)

	_, err = NewReportWarmupWorker(&fakeWarmer{}, "mỗi phút", nil, 0)
	assert.Error(t, err)

	w, err := NewReportWarmupWorker(&fakeWarmer{}, "*/5 * * * *", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{30}, w.windows)
	assert.Equal(t, 30*time.Second, w.timeout)
}

func TestRunOnce_ContinuesAfterFailure(t *testing.T) {
	fw := &fakeWarmer{fail: map[int]error{7: errors.New("store down")}, panicOn: 30}
	w, err := NewReportWarmupWorker(fw, "@every 1m", []int{7, 30, 90}, time.Second)
	require.NoError(t, err)

	assert.Equal(t, 1, w.RunOnce(context.Background()))
	assert.Equal(t, []int{7, 30, 90}, fw.calls())
	assert.True(t, fw.hasDeadline)
}

func TestRunOnce_StopsWhenCancelled(t *testing.T) {
	fw := &fakeWarmer{}
	w, err := NewReportWarmupWorker(fw, "@every 1m", []int{7, 30}, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Zero(t, w.RunOnce(ctx))
	assert.Empty(t, fw.calls())
}

func TestStart_RunsImmediatelyAndStops(t *testing.T) {
	fw := &fakeWarmer{}
	w, err := NewReportWarmupWorker(fw, "@every 1h", []int{30}, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return len(fw.calls()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker không dừng sau khi huỷ context")
	}
}
