package repository

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/otomarket/otomarket/internal/verification/domain"
)

const shardCount = 32

type shard struct {
	mu      sync.Mutex
	records map[string]*domain.Record
}

// MemoryStore is an in-process RecordStore. Identifiers are spread over
// lock-striped shards so distinct identifiers do not contend.
type MemoryStore struct {
	shards [shardCount]*shard
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]*domain.Record)}
	}
	return s
}

func (s *MemoryStore) shardFor(identifier string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return s.shards[h.Sum32()%shardCount]
}

func (s *MemoryStore) Put(ctx context.Context, rec domain.Record) error {
	sh := s.shardFor(rec.Identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	stored := rec
	sh.records[rec.Identifier] = &stored
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, identifier string) (*domain.Record, error) {
	sh := s.shardFor(identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	rec, ok := sh.records[identifier]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *MemoryStore) Delete(ctx context.Context, identifier string) error {
	sh := s.shardFor(identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.records, identifier)
	return nil
}

func (s *MemoryStore) IncrementAttempts(ctx context.Context, identifier string) (int, error) {
	sh := s.shardFor(identifier)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	rec, ok := sh.records[identifier]
	if !ok {
		return 0, domain.ErrRecordNotFound
	}
	rec.AttemptsUsed++
	return rec.AttemptsUsed, nil
}
