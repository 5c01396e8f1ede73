package jobs

import (
	"context"
	"sync"
	"time"

	"brixium.backend/pkg/logger"
	"go.uber.org/zap"
)

type checkpointStore interface {
	DirtyKeys() []string
	FlushDirty(ctx context.Context) error
}

// SnapshotCheckpointJob retries collections whose mirror write failed
type SnapshotCheckpointJob struct {
	store    checkpointStore
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSnapshotCheckpointJob(store checkpointStore, interval time.Duration) *SnapshotCheckpointJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SnapshotCheckpointJob{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SnapshotCheckpointJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting snapshot checkpoint job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Snapshot checkpoint job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Snapshot checkpoint job stopped")
			return
		case <-ticker.C:
			j.checkpoint(ctx)
		}
	}
}

func (j *SnapshotCheckpointJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *SnapshotCheckpointJob) checkpoint(ctx context.Context) {
	dirty := j.store.DirtyKeys()
	if len(dirty) == 0 {
		return
	}

	logger.Info(ctx, "Retrying snapshot mirror", zap.Strings("keys", dirty))
	if err := j.store.FlushDirty(ctx); err != nil {
		logger.Error(ctx, "Snapshot checkpoint failed", zap.Error(err))
		return
	}
	logger.Info(ctx, "Snapshot checkpoint complete", zap.Int("collections", len(dirty)))
}
