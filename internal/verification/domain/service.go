package domain

import "context"

// Service issues, validates and revokes single-use verification codes.
type Service interface {
	// Issue creates a new code for identifier, replacing any pending one,
	// dispatches it through the notifier and returns it for out-of-band
	// use. The returned code must never be echoed back over the transport
	// that requested it.
	Issue(ctx context.Context, identifier string) (string, error)

	// Reissue is the explicit resend affordance. Same replace-on-issue
	// semantics as Issue.
	Reissue(ctx context.Context, identifier string) (string, error)

	// Verify applies expiry, attempt-ceiling and match rules to the
	// submitted code and returns a verdict. Only infrastructure failures
	// are reported on the error return.
	Verify(ctx context.Context, identifier, submitted string) (Verdict, error)

	// Revoke unconditionally purges any record for identifier.
	Revoke(ctx context.Context, identifier string) error
}

// Notifier delivers an issued code to its identifier out-of-band.
type Notifier interface {
	Send(ctx context.Context, identifier, code string) error
}
