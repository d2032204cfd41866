package domain

import "errors"

var (
	// ErrRecordNotFound is returned by stores when no record exists for an
	// identifier. The service translates it into OutcomeNoActiveCode.
	ErrRecordNotFound = errors.New("verification record not found")

	// ErrStorageUnavailable wraps persistence-layer failures. Retry policy
	// belongs to the caller.
	ErrStorageUnavailable = errors.New("verification storage unavailable")

	// ErrDeliveryFailed wraps notification dispatch failures. The record is
	// already persisted when dispatch fails.
	ErrDeliveryFailed = errors.New("verification code delivery failed")
)
