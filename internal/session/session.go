// Package session owns one identity's engine and keeps the store in sync
// with it.
//
// Mutations run one at a time through Do. After each successful mutation the
// full snapshot is handed to a background saver that writes the latest
// pending snapshot and drops older ones. Save failures are logged and kept
// for LastSaveError; in-memory state is never rolled back.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/store"
)

var (
	// ErrNotLoaded is returned by Do and View before a successful Load.
	ErrNotLoaded = errors.New("session not loaded")
	// ErrClosed is returned by Do after Close.
	ErrClosed = errors.New("session closed")
)

// SaveTimeout bounds a single background save.
const SaveTimeout = 30 * time.Second

// Session serializes access to one identity's engine.
type Session struct {
	store  store.Store
	key    string
	logger *slog.Logger

	mu     sync.Mutex
	engine *ledger.Engine
	loaded bool
	closed bool

	saver *saver
}

// New creates an unloaded session for key. Engine options apply to the
// engine built on Load.
func New(st store.Store, key string, logger *slog.Logger, opts ...ledger.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("key", key)
	s := &Session{
		store:  st,
		key:    key,
		logger: logger,
		engine: ledger.New(opts...),
	}
	s.saver = newSaver(s.save, logger)
	return s
}

// Open creates a session and loads it. On a load error the returned session
// stays unloaded and rejects mutations.
func Open(ctx context.Context, st store.Store, key string, logger *slog.Logger, opts ...ledger.Option) (*Session, error) {
	s := New(st, key, logger, opts...)
	if err := s.Load(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Key returns the identity key.
func (s *Session) Key() string { return s.key }

// Loaded reports whether a load has succeeded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load replaces the engine state with the stored snapshot. A key with no
// stored data loads as empty.
func (s *Session) Load(ctx context.Context) error {
	snap, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.logger.Error("loading snapshot failed", "err", err)
		return fmt.Errorf("loading %q: %w", s.key, err)
	}
	s.mu.Lock()
	s.engine.Restore(snap)
	s.loaded = true
	s.mu.Unlock()
	s.logger.Debug("snapshot loaded",
		"accounts", len(snap.Accounts), "transactions", len(snap.Transactions))
	return nil
}

// Do runs fn as one atomic mutation. When fn succeeds the resulting
// snapshot is queued for saving.
func (s *Session) Do(fn func(*ledger.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	if err := fn(s.engine); err != nil {
		return err
	}
	s.saver.enqueue(s.engine.Snapshot())
	return nil
}

// View runs fn with read access to the engine.
func (s *Session) View(fn func(*ledger.Engine)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	fn(s.engine)
	return nil
}

// Flush waits until every queued snapshot has been written and returns
// the error of the last save attempt.
func (s *Session) Flush(ctx context.Context) error {
	if err := s.saver.wait(ctx); err != nil {
		return err
	}
	return s.LastSaveError()
}

// LastSaveError returns the outcome of the most recent save.
func (s *Session) LastSaveError() error {
	return s.saver.lastError()
}

// Close flushes pending saves and stops the saver.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	err := s.Flush(ctx)
	s.saver.stop()
	return err
}

func (s *Session) save(ctx context.Context, job snapshotJob) error {
	ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
	defer cancel()
	return s.store.Save(ctx, s.key, job.snap)
}
