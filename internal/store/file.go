package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dompet-dev/dompet/internal/model"
)

// FileStore keeps every identity's snapshot in one JSON object on disk,
// keyed by identity.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by path. The file is created on
// the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context, key string) (model.Snapshot, error) {
	s.mu.Lock()
	docs, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return model.Snapshot{}, err
	}
	raw, ok := docs[key]
	if !ok {
		return model.EmptySnapshot(), nil
	}
	return Decode(raw)
}

func (s *FileStore) Save(_ context.Context, key string, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.read()
	if err != nil {
		return err
	}
	docs[key] = data

	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}
	return s.replace(out)
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return docs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if len(data) == 0 {
		return docs, nil
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing data file %s: %w", s.path, err)
	}
	return docs, nil
}

// replace writes through a temporary file so readers never see a partial
// document.
func (s *FileStore) replace(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".dompet-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}
