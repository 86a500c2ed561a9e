package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/google/uuid"
)

// MemoryRepo is an in-memory repository used when no MongoDB is configured
// and by unit tests. Documents are stored as encoded snapshots so callers
// never share a mutable instance with the store.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string][]byte)}
}

func (m *MemoryRepo) Create(_ context.Context, doc *espd.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	m.store[doc.ID] = b
	return doc.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*espd.Document, error) {
	m.mu.RLock()
	b, ok := m.store[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(b)
}

func (m *MemoryRepo) List(_ context.Context) ([]*espd.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*espd.Document, 0, len(m.store))
	for _, b := range m.store {
		d, err := decode(b)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, doc *espd.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.store[doc.ID]
	if !ok {
		return ErrNotFound
	}
	old, err := decode(prev)
	if err != nil {
		return err
	}
	doc.CreatedAt = old.CreatedAt
	doc.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.store[doc.ID] = b
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func decode(b []byte) (*espd.Document, error) {
	var d espd.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
