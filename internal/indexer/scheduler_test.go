package indexer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeIndexUC struct {
	mu    sync.Mutex
	calls []int64
	fn    func(itemID int64) (usecase.IndexOutcome, error)
}

func (f *fakeIndexUC) IndexItem(ctx context.Context, itemID int64) (usecase.IndexOutcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, itemID)
	fn := f.fn
	f.mu.Unlock()

	if fn != nil {
		return fn(itemID)
	}
	return usecase.IndexOutcomeIndexed, nil
}

// waitFor опрашивает условие до дедлайна: воркеры асинхронны.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	s := NewScheduler(&fakeIndexUC{}, &cfg.IndexerCfg{Workers: 1, QueueCapacity: 1}, nopLogger{})
	// воркеры не запущены: очередь никто не разбирает

	assert.True(t, s.Enqueue(1))
	assert.False(t, s.Enqueue(2), "full queue must reject, not block")

	m := s.Metrics()
	assert.Equal(t, uint64(1), m.Enqueued)
	assert.Equal(t, 1, m.QueueDepth)
}

func TestEnqueueRejectsAfterStop(t *testing.T) {
	s := NewScheduler(&fakeIndexUC{}, &cfg.IndexerCfg{Workers: 1, QueueCapacity: 4}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()
	s.Stop()

	assert.False(t, s.Enqueue(1))
}

func TestTasksProcessed(t *testing.T) {
	uc := &fakeIndexUC{}
	s := NewScheduler(uc, &cfg.IndexerCfg{Workers: 2, QueueCapacity: 8}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	require.True(t, s.Enqueue(1))
	require.True(t, s.Enqueue(2))
	require.True(t, s.Enqueue(3))

	waitFor(t, func() bool { return s.Metrics().Processed == 3 })

	m := s.Metrics()
	assert.Equal(t, uint64(3), m.Enqueued)
	assert.Equal(t, uint64(3), m.Indexed)
	assert.Zero(t, m.Failed)
	assert.Empty(t, m.ItemFailures)
}

func TestFailureContainment(t *testing.T) {
	var attempts sync.Map
	uc := &fakeIndexUC{
		fn: func(itemID int64) (usecase.IndexOutcome, error) {
			if itemID != 7 {
				return usecase.IndexOutcomeIndexed, nil
			}
			n, _ := attempts.LoadOrStore(itemID, new(int))
			counter := n.(*int)
			*counter++
			if *counter <= 2 {
				return "", fmt.Errorf("embedder unavailable")
			}
			return usecase.IndexOutcomeIndexed, nil
		},
	}
	s := NewScheduler(uc, &cfg.IndexerCfg{Workers: 1, QueueCapacity: 8}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	// две неудачи подряд по одной позиции
	require.True(t, s.Enqueue(7))
	waitFor(t, func() bool { return s.Metrics().Processed == 1 })
	require.True(t, s.Enqueue(7))
	waitFor(t, func() bool { return s.Metrics().Processed == 2 })

	m := s.Metrics()
	assert.Equal(t, uint64(2), m.Failed)
	assert.Equal(t, uint64(2), m.ItemFailures[7])

	// успех обнуляет счётчик подряд идущих неудач
	require.True(t, s.Enqueue(7))
	waitFor(t, func() bool { return s.Metrics().Processed == 3 })

	m = s.Metrics()
	assert.Equal(t, uint64(1), m.Indexed)
	assert.NotContains(t, m.ItemFailures, int64(7))

	// отказы одной позиции не мешают остальным
	require.True(t, s.Enqueue(8))
	waitFor(t, func() bool { return s.Metrics().Processed == 4 })
	assert.Equal(t, uint64(2), s.Metrics().Indexed)
}

func TestSkippedOutcomeCounted(t *testing.T) {
	uc := &fakeIndexUC{
		fn: func(itemID int64) (usecase.IndexOutcome, error) {
			return usecase.IndexOutcomeSkipped, nil
		},
	}
	s := NewScheduler(uc, &cfg.IndexerCfg{Workers: 1, QueueCapacity: 4}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	require.True(t, s.Enqueue(5))
	waitFor(t, func() bool { return s.Metrics().Processed == 1 })

	m := s.Metrics()
	assert.Equal(t, uint64(1), m.Skipped)
	assert.Zero(t, m.Indexed)
}

func TestDefaultsApplied(t *testing.T) {
	s := NewScheduler(&fakeIndexUC{}, &cfg.IndexerCfg{}, nopLogger{})

	m := s.Metrics()
	assert.Equal(t, 1, m.WorkerCount)
	assert.Equal(t, 64, cap(s.tasks))
}
