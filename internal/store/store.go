// Package store persists one snapshot per identity key.
//
// Every driver stores the snapshot as a JSON document with six arrays.
// Loading a key that was never saved yields an empty snapshot, not an error.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dompet-dev/dompet/internal/model"
)

// ErrNotFound is returned by drivers when nothing is stored under a key.
// Load implementations translate it into an empty snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Store loads and saves whole snapshots.
type Store interface {
	Load(ctx context.Context, key string) (model.Snapshot, error)
	Save(ctx context.Context, key string, snap model.Snapshot) error
}

// Encode serializes a snapshot. Nil collections are written as empty arrays.
func Encode(snap model.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Missing arrays decode as empty.
func Decode(data []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap.Normalize(), nil
}

// orEmpty maps ErrNotFound to an empty snapshot.
func orEmpty(snap model.Snapshot, err error) (model.Snapshot, error) {
	if errors.Is(err, ErrNotFound) {
		return model.EmptySnapshot(), nil
	}
	return snap, err
}
