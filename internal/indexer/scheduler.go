// Package indexer реализует фоновую очередь задач индексации эмбеддингов.
package indexer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// taskTimeout ограничивает одну задачу целиком: скачивание фото,
// векторизацию и запись. Повисшая задача — это отказ, а не ожидание.
const taskTimeout = 60 * time.Second

// Scheduler — ограниченный пул воркеров над буферизованной очередью задач.
// Постановка задачи неблокирующая: переполненная очередь отклоняет задачу,
// следующий upsert позиции поставит её снова.
type Scheduler struct {
	uc      usecase.IndexUC
	logger  logger.Logger
	tasks   chan int64
	workers int

	wg           sync.WaitGroup
	shuttingDown atomic.Bool

	enqueued  atomic.Uint64
	processed atomic.Uint64
	indexed   atomic.Uint64
	skipped   atomic.Uint64
	failed    atomic.Uint64

	mu sync.Mutex
	// consecutiveFailures — подряд идущие неудачи по позициям,
	// обнуляются успешной или пропущенной задачей.
	consecutiveFailures map[int64]uint64
}

// Metrics — снимок счётчиков очереди для эндпоинта метрик.
type Metrics struct {
	Enqueued     uint64           `json:"tasks_enqueued"`
	Processed    uint64           `json:"tasks_processed"`
	Indexed      uint64           `json:"tasks_indexed"`
	Skipped      uint64           `json:"tasks_skipped"`
	Failed       uint64           `json:"tasks_failed"`
	QueueDepth   int              `json:"queue_depth"`
	WorkerCount  int              `json:"worker_count"`
	ItemFailures map[int64]uint64 `json:"item_consecutive_failures,omitempty"`
}

func NewScheduler(uc usecase.IndexUC, cfg *cfg.IndexerCfg, logger logger.Logger) *Scheduler {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	capacity := cfg.QueueCapacity
	if capacity <= 0 {
		capacity = 64
	}

	return &Scheduler{
		uc:                  uc,
		logger:              logger,
		tasks:               make(chan int64, capacity),
		workers:             workers,
		consecutiveFailures: make(map[int64]uint64),
	}
}

// Start запускает воркеров; они живут до отмены контекста.
func (s *Scheduler) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.worker(ctx)
		}()
	}
	s.logger.Infof("index scheduler started, workers: %d, queue capacity: %d", s.workers, cap(s.tasks))
}

// Stop закрывает приём задач и дожидается воркеров.
// Оставшиеся в очереди задачи пропадают: следующий upsert их восстановит.
func (s *Scheduler) Stop() {
	s.shuttingDown.Store(true)
	s.wg.Wait()
}

// Enqueue ставит задачу индексации позиции. Возвращает false при
// переполненной очереди или остановке — вызывающий только логирует это.
func (s *Scheduler) Enqueue(itemID int64) bool {
	if s.shuttingDown.Load() {
		return false
	}

	select {
	case s.tasks <- itemID:
		s.enqueued.Add(1)
		return true
	default:
		return false
	}
}

func (s *Scheduler) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case itemID := <-s.tasks:
			s.runTask(ctx, itemID)
		}
	}
}

// runTask выполняет одну задачу. Любая ошибка гасится здесь:
// конвейер индексации строго best-effort по отношению к пути синхронизации.
func (s *Scheduler) runTask(ctx context.Context, itemID int64) {
	taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	outcome, err := s.uc.IndexItem(taskCtx, itemID)
	s.processed.Add(1)

	if err != nil {
		s.failed.Add(1)
		failures := s.noteFailure(itemID)
		s.logger.Warnf("index task failed, item_id: %d, consecutive failures: %d, cause: %v", itemID, failures, err)
		return
	}

	s.clearFailures(itemID)
	switch outcome {
	case usecase.IndexOutcomeIndexed:
		s.indexed.Add(1)
	case usecase.IndexOutcomeSkipped:
		s.skipped.Add(1)
	}
}

func (s *Scheduler) noteFailure(itemID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveFailures[itemID]++
	return s.consecutiveFailures[itemID]
}

func (s *Scheduler) clearFailures(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.consecutiveFailures, itemID)
}

// Metrics возвращает снимок счётчиков для наблюдаемости.
func (s *Scheduler) Metrics() Metrics {
	s.mu.Lock()
	itemFailures := make(map[int64]uint64, len(s.consecutiveFailures))
	for id, n := range s.consecutiveFailures {
		itemFailures[id] = n
	}
	s.mu.Unlock()

	return Metrics{
		Enqueued:     s.enqueued.Load(),
		Processed:    s.processed.Load(),
		Indexed:      s.indexed.Load(),
		Skipped:      s.skipped.Load(),
		Failed:       s.failed.Load(),
		QueueDepth:   len(s.tasks),
		WorkerCount:  s.workers,
		ItemFailures: itemFailures,
	}
}
