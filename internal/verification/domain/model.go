// Package domain contains core types for the verification service.
package domain

import "time"

// Record is a live verification code bound to an identifier. At most one
// record exists per identifier; issuing a new code replaces any prior one.
type Record struct {
	Identifier   string    `json:"identifier"`
	Code         string    `json:"code"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	AttemptsUsed int       `json:"attempts_used"`
}

// Outcome is the closed set of results a verification attempt can produce.
type Outcome string

const (
	OutcomeVerified          Outcome = "verified"
	OutcomeInvalid           Outcome = "invalid"
	OutcomeExpired           Outcome = "expired"
	OutcomeAttemptsExhausted Outcome = "attempts_exhausted"
	OutcomeNoActiveCode      Outcome = "no_active_code"
)

// Verdict is the result of a verification attempt. Outcomes are expected
// branches of the state machine, not errors; infrastructure failures travel
// on the error return of Verify instead.
type Verdict struct {
	Outcome Outcome `json:"outcome"`

	// AttemptsRemaining is informational and only meaningful when
	// Outcome is OutcomeInvalid.
	AttemptsRemaining int `json:"attempts_remaining"`
}

func (v Verdict) Verified() bool {
	return v.Outcome == OutcomeVerified
}
