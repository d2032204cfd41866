package domain

import "context"

// Service computes quota state for institutes.
type Service interface {
	Status(ctx context.Context, instituteID string) (*Status, error)
}
