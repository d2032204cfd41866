package domain

import "context"

// RecordStore persists live verification records keyed by identifier. It is
// owned exclusively by the verification service.
//
// Implementations must make per-identifier operations atomic with respect to
// each other: concurrent IncrementAttempts calls against one record may not
// lose updates, and operations on distinct identifiers must not block one
// another.
type RecordStore interface {
	// Put stores rec, replacing any existing record for the identifier.
	Put(ctx context.Context, rec Record) error

	// Get returns the record for identifier, or ErrRecordNotFound.
	Get(ctx context.Context, identifier string) (*Record, error)

	// Delete removes any record for identifier. Deleting a missing record
	// is not an error.
	Delete(ctx context.Context, identifier string) error

	// IncrementAttempts atomically increments the attempt counter and
	// returns the new value, or ErrRecordNotFound.
	IncrementAttempts(ctx context.Context, identifier string) (int, error)
}
