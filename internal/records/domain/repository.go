package domain

import (
	"context"
	"errors"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	FindByInstitute(ctx context.Context, instituteID string) (*Subscription, error)

	// IncrementUsage bumps the counter for resource ("browse" or
	// "listing") by one. The increment is atomic at the SQL level; the
	// counters only ever grow.
	IncrementUsage(ctx context.Context, instituteID, resource string) error

	SetStatus(ctx context.Context, instituteID, status string, paymentPending bool) error
}
