package service

import (
	"context"
	"fmt"
	"time"

	"github.com/otomarket/otomarket/internal/clock"
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/quota/domain"
	recordsdomain "github.com/otomarket/otomarket/internal/records/domain"
	"go.uber.org/zap"
)

type Service struct {
	log          *zap.Logger
	records      recordsdomain.Repository
	clock        clock.Clock
	expiringSoon time.Duration
}

func New(log *zap.Logger, cfg config.QuotaConfig, records recordsdomain.Repository, clk clock.Clock) domain.Service {
	return &Service{
		log:          log.Named("quota.service"),
		records:      records,
		clock:        clk,
		expiringSoon: cfg.ExpiringSoonThreshold,
	}
}

// Status loads the institute's raw figures and derives the full quota view.
// It mutates nothing; two calls with unchanged records return equal values.
func (s *Service) Status(ctx context.Context, instituteID string) (*domain.Status, error) {
	sub, err := s.records.FindByInstitute(ctx, instituteID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	state := domain.SubscriptionState{
		Status:         sub.Status,
		PaymentPending: sub.PaymentPending,
		Window:         ComputeWindow(sub.EndDate, now, s.expiringSoon),
	}
	usage := domain.UsageSet{
		Browse:  ComputeUsage(sub.BrowseUsed, sub.BrowseAllowed),
		Listing: ComputeUsage(sub.ListingUsed, sub.ListingAllowed),
	}

	return &domain.Status{
		InstituteID: instituteID,
		PlanCode:    sub.PlanCode,
		State:       state,
		Usage:       usage,
		Alerts:      ClassifyAlerts(state, usage),
	}, nil
}

// ComputeUsage derives the usage view over one raw counter pair. Negative
// inputs are clamped, not rejected; they come from an external system this
// core does not validate. Allowed == 0 means no limit is configured.
func ComputeUsage(used, allowed int64) domain.UsageLimit {
	if used < 0 {
		used = 0
	}
	if allowed < 0 {
		allowed = 0
	}

	limit := domain.UsageLimit{Used: used, Allowed: allowed}
	if allowed == 0 {
		return limit
	}

	pct := used * 100 / allowed
	if pct > 100 {
		pct = 100
	}
	limit.Percentage = int(pct)
	if used < allowed {
		limit.Remaining = allowed - used
	}
	limit.LimitReached = used >= allowed
	return limit
}

// ComputeWindow derives expiry state from an optional end date. A nil end
// date means the subscription never expires.
func ComputeWindow(endDate *time.Time, now time.Time, expiringSoon time.Duration) domain.SubscriptionWindow {
	if endDate == nil {
		return domain.SubscriptionWindow{}
	}

	window := domain.SubscriptionWindow{EndDate: endDate}
	remaining := endDate.Sub(now)
	if remaining < 0 {
		window.IsExpired = true
		return window
	}

	window.IsExpiringSoon = remaining < expiringSoon
	window.DaysRemaining = int((remaining + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
	return window
}

// ClassifyAlerts evaluates every alert condition independently and returns
// the ones that hold, in fixed priority order. The result is rebuilt on
// every call since the inputs can change between calls.
func ClassifyAlerts(state domain.SubscriptionState, usage domain.UsageSet) []domain.Alert {
	alerts := make([]domain.Alert, 0, 6)

	if state.PaymentPending {
		alerts = append(alerts, domain.Alert{
			Code:     domain.AlertPaymentPending,
			Severity: domain.SeverityCritical,
			Message:  "Payment is pending. Complete it to keep your subscription active.",
		})
	}
	if state.Window.IsExpired {
		alerts = append(alerts, domain.Alert{
			Code:     domain.AlertExpired,
			Severity: domain.SeverityCritical,
			Message:  "Your subscription has expired. Renew to continue.",
		})
	}
	// Expiring-soon is noise once the subscription is already expired.
	if state.Window.IsExpiringSoon && !state.Window.IsExpired {
		alerts = append(alerts, domain.Alert{
			Code:     domain.AlertExpiringSoon,
			Severity: domain.SeverityAdvisory,
			Message:  fmt.Sprintf("Your subscription expires in %d days.", state.Window.DaysRemaining),
		})
	}
	if usage.Browse.LimitReached {
		alerts = append(alerts, limitAlert(domain.AlertBrowseLimitReached, "browsing", usage.Browse))
	}
	if usage.Listing.LimitReached {
		alerts = append(alerts, limitAlert(domain.AlertListingLimitReached, "listing", usage.Listing))
	}
	if state.Status == domain.StatusSuspended {
		alerts = append(alerts, domain.Alert{
			Code:     domain.AlertSuspended,
			Severity: domain.SeverityCritical,
			Message:  "Your account is suspended. Contact support.",
		})
	}

	return alerts
}

func limitAlert(code domain.AlertCode, name string, limit domain.UsageLimit) domain.Alert {
	return domain.Alert{
		Code:     code,
		Severity: domain.SeverityAdvisory,
		Message:  fmt.Sprintf("You have reached your %s limit (%d of %d used).", name, limit.Used, limit.Allowed),
	}
}
