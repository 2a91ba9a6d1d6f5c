package repo_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mvbarbosa/fuellog/internal/kv"
)

// memStore is a hand-written in-memory test double for kv.Store.
// Set corrupt[key] to make reads of that key fail like a mangled payload;
// set setErr to make every write fail with it.
type memStore struct {
	data    map[string]json.RawMessage
	corrupt map[string]bool
	setErr  error
}

func newMemStore() *memStore {
	return &memStore{
		data:    make(map[string]json.RawMessage),
		corrupt: make(map[string]bool),
	}
}

func (m *memStore) Get(_ context.Context, key string, dest any) (bool, error) {
	if m.corrupt[key] {
		return false, fmt.Errorf("memStore.Get %q: %w", key, kv.ErrCorrupt)
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("memStore.Get %q: %w: %v", key, kv.ErrCorrupt, err)
	}
	return true, nil
}

func (m *memStore) Set(_ context.Context, key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Probe(context.Context) error { return nil }

// compile-time check: memStore must satisfy kv.Store.
var _ kv.Store = (*memStore)(nil)
