package scheduler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCronService(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	job := func(ctx context.Context, logger *slog.Logger) {}

	t.Run("descriptor", func(t *testing.T) {
		s, err := NewCronService("@every 5s", time.UTC, job, log)
		require.NoError(t, err)

		now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		assert.WithinDuration(t, now.Add(5*time.Second), s.NextRun(now), 0)
	})

	t.Run("five field spec", func(t *testing.T) {
		s, err := NewCronService("30 9 * * *", time.UTC, job, log)
		require.NoError(t, err)

		now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		assert.WithinDuration(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), s.NextRun(now), 0)
	})

	t.Run("invalid spec", func(t *testing.T) {
		_, err := NewCronService("invalid", time.UTC, job, log)
		assert.Error(t, err)
	})
}

func TestCronService_Lifecycle(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	var executions atomic.Int32
	job := func(ctx context.Context, logger *slog.Logger) {
		executions.Add(1)
	}

	s, err := NewCronService("@every 1s", time.UTC, job, log)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Shutdown(time.Second), ErrNotRunning)

	started := make(chan error, 1)
	go func() { started <- s.Start() }()
	require.Eventually(t, s.Running, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, s.Start(), ErrAlreadyRunning)

	require.Eventually(t, func() bool { return executions.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Shutdown(time.Second))
	require.NoError(t, <-started)
	assert.False(t, s.Running())
}

func TestCronService_PanicRecovered(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	var calls atomic.Int32
	job := func(ctx context.Context, logger *slog.Logger) {
		calls.Add(1)
		panic("boom")
	}

	s, err := NewCronService("@every 1s", time.UTC, job, log)
	require.NoError(t, err)

	go func() { _ = s.Start() }()
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Shutdown(time.Second))
}

func TestCronService_SkipsOverlappingRuns(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	var runs atomic.Int32
	release := make(chan struct{})
	job := func(ctx context.Context, logger *slog.Logger) {
		runs.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
	}

	s, err := NewCronService("@every 1s", time.UTC, job, log)
	require.NoError(t, err)

	go func() { _ = s.Start() }()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	// at least one more tick fires while the first run is still blocked
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	require.NoError(t, s.Shutdown(time.Second))
}

// lockedBuffer lets the cron goroutines log while the test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCronService_TaskID(t *testing.T) {
	var out lockedBuffer
	log := slog.New(slog.NewJSONHandler(&out, nil))

	var runs atomic.Int32
	job := func(ctx context.Context, logger *slog.Logger) {
		logger.Info("reminder run")
		runs.Add(1)
	}

	s, err := NewCronService("@every 1s", time.UTC, job, log)
	require.NoError(t, err)

	go func() { _ = s.Start() }()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
	require.NoError(t, s.Shutdown(time.Second))

	var ids []string
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		if rec["msg"] != "reminder run" {
			continue
		}
		id, _ := rec["task_id"].(string)
		require.NotEmpty(t, id, "run logged without task_id")
		ids = append(ids, id)
	}

	require.GreaterOrEqual(t, len(ids), 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestCronService_Restart(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	job := func(ctx context.Context, logger *slog.Logger) {}

	s, err := NewCronService("@every 1h", time.UTC, job, log)
	require.NoError(t, err)

	for range 2 {
		done := make(chan error, 1)
		go func() { done <- s.Start() }()
		require.Eventually(t, s.Running, time.Second, 10*time.Millisecond)

		require.NoError(t, s.Shutdown(time.Second))
		require.NoError(t, <-done)
	}

	assert.Len(t, s.cron.Entries(), 1)
}
