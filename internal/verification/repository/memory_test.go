package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/otomarket/otomarket/internal/verification/domain"
)

func testRecord(identifier string) domain.Record {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Record{
		Identifier: identifier,
		Code:       "123456",
		IssuedAt:   now,
		ExpiresAt:  now.Add(10 * time.Minute),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "a@example.com"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	if err := store.Put(ctx, testRecord("a@example.com")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	rec, err := store.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.Code != "123456" || rec.AttemptsUsed != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// Mutating the returned copy must not leak into the store.
	rec.AttemptsUsed = 99
	again, err := store.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.AttemptsUsed != 0 {
		t.Fatalf("store leaked a mutable reference")
	}
}

func TestMemoryStorePutResetsAttempts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, testRecord("a@example.com")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, err := store.IncrementAttempts(ctx, "a@example.com"); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	replacement := testRecord("a@example.com")
	replacement.Code = "654321"
	if err := store.Put(ctx, replacement); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	rec, err := store.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.Code != "654321" || rec.AttemptsUsed != 0 {
		t.Fatalf("replacement did not reset the record: %+v", rec)
	}
}

func TestMemoryStoreIncrementAfterDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, testRecord("a@example.com")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Delete(ctx, "a@example.com"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, "a@example.com"); err != nil {
		t.Fatalf("deleting a missing record must not error: %v", err)
	}

	if _, err := store.IncrementAttempts(ctx, "a@example.com"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, testRecord("a@example.com")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	const workers = 100
	var wg sync.WaitGroup
	seen := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.IncrementAttempts(ctx, "a@example.com")
			if err != nil {
				t.Errorf("increment failed: %v", err)
				return
			}
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int]bool, workers)
	for n := range seen {
		if unique[n] {
			t.Fatalf("increment returned duplicate value %d", n)
		}
		unique[n] = true
	}

	rec, err := store.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rec.AttemptsUsed != workers {
		t.Fatalf("expected %d attempts, got %d", workers, rec.AttemptsUsed)
	}
}
