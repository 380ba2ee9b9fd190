package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"btn-backend/internal/models"
)

// Store is the advisory result cache keyed by a content hash of the
// uploaded document plus the generation options. It is an
// optimization, never a correctness dependency: implementations are
// best-effort, concurrent writers are last-write-wins, and a miss
// only costs a recompute.
type Store interface {
	Get(ctx context.Context, key string) (*models.GenerateTracksResponse, bool)
	Put(ctx context.Context, key string, resp *models.GenerateTracksResponse)
	Name() string
}

// Key derives the cache key from the raw upload bytes and the request
// fingerprint (styles and knobs), so the same chapter generated with
// different settings does not collide.
func Key(pdfBytes []byte, fingerprint string) string {
	h := sha256.New()
	h.Write(pdfBytes)
	h.Write([]byte("\x00"))
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// MemoryStore is the process-local default used when Redis is not
// configured. Good enough for a single-user tool.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*models.GenerateTracksResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*models.GenerateTracksResponse)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*models.GenerateTracksResponse, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp, ok := m.entries[key]
	return resp, ok
}

func (m *MemoryStore) Put(_ context.Context, key string, resp *models.GenerateTracksResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = resp
}

func (m *MemoryStore) Name() string { return "memory" }
