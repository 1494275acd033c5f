package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"reservation-portal/core/utils"
)

// ErrNoBatch is returned when committing without an open batch.
var ErrNoBatch = errors.New("no staging batch open")

type staged struct {
	name string
	data []byte
}

// StagedStore wraps a Store so a whole generation can be written at once.
// While a batch is open, Save buffers artifacts in memory and the wrapped
// store keeps serving the previous set. Commit replaces that set with the
// batch, Discard drops it.
type StagedStore struct {
	Store

	mu    sync.Mutex
	open  bool
	batch []staged
}

// NewStagedStore wraps store.
func NewStagedStore(store Store) *StagedStore {
	return &StagedStore{Store: store}
}

// Begin opens a batch, dropping any uncommitted one.
func (s *StagedStore) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.batch = nil
}

// Save buffers the artifact while a batch is open and writes through otherwise.
func (s *StagedStore) Save(ctx context.Context, name string, r io.Reader, size int64) error {
	s.mu.Lock()
	open := s.open
	s.mu.Unlock()
	if !open {
		return s.Store.Save(ctx, name, r, size)
	}

	rel, err := utils.CleanRelative(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	name = rel
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to buffer %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.batch {
		if s.batch[i].name == name {
			s.batch[i].data = data
			return nil
		}
	}
	s.batch = append(s.batch, staged{name: name, data: data})
	return nil
}

// Commit clears the wrapped store and writes the batch in save order.
func (s *StagedStore) Commit(ctx context.Context) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNoBatch
	}
	batch := s.batch
	s.open = false
	s.batch = nil
	s.mu.Unlock()

	if err := s.Store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear previous reports: %w", err)
	}
	for _, a := range batch {
		if err := s.Store.Save(ctx, a.name, bytes.NewReader(a.data), int64(len(a.data))); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.name, err)
		}
	}
	return nil
}

// Discard drops the open batch and leaves the wrapped store untouched.
func (s *StagedStore) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.batch = nil
}
