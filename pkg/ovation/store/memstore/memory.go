// Package memstore provides an in-memory corpus archive for tests and
// one-shot runs.
package memstore

import (
	"context"
	"sync"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/store"
)

type memStore struct {
	mu   sync.RWMutex
	msgs []corpus.Message
}

// New returns an empty in-memory archive.
func New() store.Store {
	return &memStore{}
}

func (s *memStore) Close() error { return nil }

func (s *memStore) SaveMessages(_ context.Context, msgs []corpus.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msgs...)
	return nil
}

func (s *memStore) LoadMessages(_ context.Context) ([]corpus.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]corpus.Message(nil), s.msgs...), nil
}

func (s *memStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.msgs)), nil
}
