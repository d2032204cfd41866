// Package notify adapts delivery providers to the verification notifier
// contract.
package notify

import (
	"context"
	"fmt"

	"github.com/otomarket/otomarket/internal/providers/email"
	"github.com/otomarket/otomarket/internal/verification/domain"
)

type EmailNotifier struct {
	provider email.Provider
}

func NewEmailNotifier(provider email.Provider) domain.Notifier {
	return &EmailNotifier{provider: provider}
}

func (n *EmailNotifier) Send(ctx context.Context, identifier, code string) error {
	subject := "Your Otomarket verification code"
	body := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires shortly. If you did not request it, ignore this message.</p>", code)
	return n.provider.Send(ctx, []string{identifier}, subject, body)
}
