package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type checkpointStoreStub struct {
	mu        sync.Mutex
	dirty     []string
	flushErr  error
	flushCall int
}

func (s *checkpointStoreStub) DirtyKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dirty...)
}

func (s *checkpointStoreStub) FlushDirty(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushCall++
	if s.flushErr != nil {
		return s.flushErr
	}
	s.dirty = nil
	return nil
}

func (s *checkpointStoreStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushCall
}

func TestCheckpoint_NothingDirty(t *testing.T) {
	store := &checkpointStoreStub{}
	job := NewSnapshotCheckpointJob(store, time.Millisecond)

	job.checkpoint(context.Background())
	require.Equal(t, 0, store.calls())
}

func TestCheckpoint_FlushesDirty(t *testing.T) {
	store := &checkpointStoreStub{dirty: []string{"brixiumUsers"}}
	job := NewSnapshotCheckpointJob(store, time.Millisecond)

	job.checkpoint(context.Background())
	require.Equal(t, 1, store.calls())
	require.Empty(t, store.DirtyKeys())
}

func TestCheckpoint_FlushError(t *testing.T) {
	store := &checkpointStoreStub{dirty: []string{"brixiumUsers"}, flushErr: errors.New("redis down")}
	job := NewSnapshotCheckpointJob(store, time.Millisecond)

	job.checkpoint(context.Background())
	require.Equal(t, 1, store.calls())
	require.Equal(t, []string{"brixiumUsers"}, store.DirtyKeys())
}

func TestNewSnapshotCheckpointJob_DefaultInterval(t *testing.T) {
	job := NewSnapshotCheckpointJob(&checkpointStoreStub{}, 0)
	require.Equal(t, 30*time.Second, job.interval)
}

func TestStartStop_StopsByContext(t *testing.T) {
	store := &checkpointStoreStub{dirty: []string{"brixiumNotifications"}}
	job := NewSnapshotCheckpointJob(store, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.calls() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after context cancellation")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewSnapshotCheckpointJob(&checkpointStoreStub{}, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	job.Stop()
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after Stop")
	}
}
