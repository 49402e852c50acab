package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dompet-dev/dompet/internal/model"
)

type snapshotJob struct {
	snap model.Snapshot
	gen  uint64
}

// saver writes snapshots in the background. Only the newest pending
// snapshot is kept; a snapshot superseded before its turn is never written.
type saver struct {
	save   func(context.Context, snapshotJob) error
	logger *slog.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	pending *snapshotJob
	busy    bool
	gen     uint64
	lastErr error

	kick     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newSaver(save func(context.Context, snapshotJob) error, logger *slog.Logger) *saver {
	sv := &saver{
		save:   save,
		logger: logger,
		kick:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	sv.idle = sync.NewCond(&sv.mu)
	go sv.run()
	return sv
}

func (sv *saver) enqueue(snap model.Snapshot) {
	sv.mu.Lock()
	sv.gen++
	sv.pending = &snapshotJob{snap: snap, gen: sv.gen}
	sv.mu.Unlock()

	select {
	case sv.kick <- struct{}{}:
	default:
	}
}

func (sv *saver) run() {
	defer close(sv.done)
	for range sv.kick {
		sv.drain()
	}
}

func (sv *saver) drain() {
	for {
		sv.mu.Lock()
		job := sv.pending
		if job == nil {
			sv.busy = false
			sv.idle.Broadcast()
			sv.mu.Unlock()
			return
		}
		sv.pending = nil
		sv.busy = true
		sv.mu.Unlock()

		err := sv.save(context.Background(), *job)
		if err != nil {
			sv.logger.Error("saving snapshot failed", "gen", job.gen, "err", err)
		} else {
			sv.logger.Debug("snapshot saved", "gen", job.gen)
		}

		sv.mu.Lock()
		sv.lastErr = err
		sv.mu.Unlock()
	}
}

// wait blocks until nothing is pending or in flight.
func (sv *saver) wait(ctx context.Context) error {
	idle := make(chan struct{})
	go func() {
		sv.mu.Lock()
		for sv.pending != nil || sv.busy {
			sv.idle.Wait()
		}
		sv.mu.Unlock()
		close(idle)
	}()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (sv *saver) lastError() error {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.lastErr
}

func (sv *saver) stop() {
	sv.stopOnce.Do(func() { close(sv.kick) })
	<-sv.done
}
