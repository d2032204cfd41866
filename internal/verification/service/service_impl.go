package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/otomarket/otomarket/internal/clock"
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/observability/metrics"
	"github.com/otomarket/otomarket/internal/verification/domain"
	"go.uber.org/zap"
)

type Service struct {
	log      *zap.Logger
	store    domain.RecordStore
	notifier domain.Notifier
	clock    clock.Clock
	metrics  *metrics.Metrics

	codeDigits   int
	expiryWindow time.Duration
	maxAttempts  int
}

func New(log *zap.Logger, cfg config.VerificationConfig, store domain.RecordStore, notifier domain.Notifier, clk clock.Clock, m *metrics.Metrics) domain.Service {
	return &Service{
		log:          log.Named("verification.service"),
		store:        store,
		notifier:     notifier,
		clock:        clk,
		metrics:      m,
		codeDigits:   cfg.CodeDigits,
		expiryWindow: cfg.ExpiryWindow,
		maxAttempts:  cfg.MaxAttempts,
	}
}

func (s *Service) Issue(ctx context.Context, identifier string) (string, error) {
	return s.issue(ctx, identifier, "code issued")
}

func (s *Service) Reissue(ctx context.Context, identifier string) (string, error) {
	return s.issue(ctx, identifier, "code reissued")
}

func (s *Service) issue(ctx context.Context, identifier, event string) (string, error) {
	code, err := generateCode(s.codeDigits)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	rec := domain.Record{
		Identifier:   identifier,
		Code:         code,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.expiryWindow),
		AttemptsUsed: 0,
	}

	// Put replaces any pending record, so a previously issued code is
	// permanently invalidated here.
	if err := s.store.Put(ctx, rec); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if err := s.notifier.Send(ctx, identifier, code); err != nil {
		s.log.Warn("code dispatch failed", zap.String("identifier", identifier), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	s.metrics.CodeIssued()
	s.log.Info(event,
		zap.String("identifier", identifier),
		zap.Time("expires_at", rec.ExpiresAt),
	)
	return code, nil
}

func (s *Service) Verify(ctx context.Context, identifier, submitted string) (domain.Verdict, error) {
	verdict, err := s.verify(ctx, identifier, submitted)
	if err != nil {
		return domain.Verdict{}, err
	}
	s.metrics.VerifyOutcome(string(verdict.Outcome))
	s.log.Info("verification attempt",
		zap.String("identifier", identifier),
		zap.String("outcome", string(verdict.Outcome)),
	)
	return verdict, nil
}

func (s *Service) verify(ctx context.Context, identifier, submitted string) (domain.Verdict, error) {
	rec, err := s.store.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Verdict{Outcome: domain.OutcomeNoActiveCode}, nil
		}
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	// Expiry is checked lazily here; nothing sweeps the store. The expired
	// path never touches the attempt counter.
	if s.clock.Now().After(rec.ExpiresAt) {
		if err := s.purge(ctx, identifier); err != nil {
			return domain.Verdict{}, err
		}
		return domain.Verdict{Outcome: domain.OutcomeExpired}, nil
	}

	if rec.AttemptsUsed >= s.maxAttempts {
		if err := s.purge(ctx, identifier); err != nil {
			return domain.Verdict{}, err
		}
		return domain.Verdict{Outcome: domain.OutcomeAttemptsExhausted}, nil
	}

	if subtle.ConstantTimeCompare([]byte(submitted), []byte(rec.Code)) == 1 {
		if err := s.purge(ctx, identifier); err != nil {
			return domain.Verdict{}, err
		}
		return domain.Verdict{Outcome: domain.OutcomeVerified}, nil
	}

	// Increment-and-check must be one atomic step: two racing wrong
	// submissions may not both slip under the ceiling.
	attempts, err := s.store.IncrementAttempts(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Verdict{Outcome: domain.OutcomeNoActiveCode}, nil
		}
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if attempts >= s.maxAttempts {
		if err := s.purge(ctx, identifier); err != nil {
			return domain.Verdict{}, err
		}
		return domain.Verdict{Outcome: domain.OutcomeAttemptsExhausted}, nil
	}

	return domain.Verdict{
		Outcome:           domain.OutcomeInvalid,
		AttemptsRemaining: s.maxAttempts - attempts,
	}, nil
}

func (s *Service) Revoke(ctx context.Context, identifier string) error {
	if err := s.purge(ctx, identifier); err != nil {
		return err
	}
	s.log.Info("code revoked", zap.String("identifier", identifier))
	return nil
}

func (s *Service) purge(ctx context.Context, identifier string) error {
	if err := s.store.Delete(ctx, identifier); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// generateCode draws uniformly over the full digit-count range, e.g. six
// digits means 100000-999999. Codes are never left-zero-padded.
func generateCode(digits int) (string, error) {
	if digits < 1 {
		digits = 6
	}
	lower := int64(1)
	for i := 1; i < digits; i++ {
		lower *= 10
	}
	span := 9 * lower
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(lower+n.Int64(), 10), nil
}
