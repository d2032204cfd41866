package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/otomarket/otomarket/internal/clock"
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/quota/domain"
	recordsdomain "github.com/otomarket/otomarket/internal/records/domain"
	recordsrepository "github.com/otomarket/otomarket/internal/records/repository"
	"github.com/otomarket/otomarket/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestComputeUsage(t *testing.T) {
	limit := ComputeUsage(80, 100)
	assert.Equal(t, 80, limit.Percentage)
	assert.Equal(t, int64(20), limit.Remaining)
	assert.False(t, limit.LimitReached)

	limit = ComputeUsage(120, 100)
	assert.Equal(t, 100, limit.Percentage)
	assert.Equal(t, int64(0), limit.Remaining)
	assert.True(t, limit.LimitReached)

	limit = ComputeUsage(100, 100)
	assert.Equal(t, 100, limit.Percentage)
	assert.Equal(t, int64(0), limit.Remaining)
	assert.True(t, limit.LimitReached)
}

func TestComputeUsageNoLimitConfigured(t *testing.T) {
	limit := ComputeUsage(500, 0)
	assert.Equal(t, 0, limit.Percentage)
	assert.Equal(t, int64(0), limit.Remaining)
	assert.False(t, limit.LimitReached)
}

func TestComputeUsageClampsNegatives(t *testing.T) {
	limit := ComputeUsage(-5, 100)
	assert.Equal(t, int64(0), limit.Used)
	assert.Equal(t, 0, limit.Percentage)
	assert.Equal(t, int64(100), limit.Remaining)
	assert.False(t, limit.LimitReached)

	limit = ComputeUsage(5, -100)
	assert.False(t, limit.LimitReached)
}

func TestComputeWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	soon := 30 * 24 * time.Hour

	window := ComputeWindow(nil, now, soon)
	assert.False(t, window.IsExpired)
	assert.False(t, window.IsExpiringSoon)
	assert.Equal(t, 0, window.DaysRemaining)

	farOut := now.Add(90 * 24 * time.Hour)
	window = ComputeWindow(&farOut, now, soon)
	assert.False(t, window.IsExpired)
	assert.False(t, window.IsExpiringSoon)
	assert.Equal(t, 90, window.DaysRemaining)

	closeBy := now.Add(10*24*time.Hour + time.Hour)
	window = ComputeWindow(&closeBy, now, soon)
	assert.False(t, window.IsExpired)
	assert.True(t, window.IsExpiringSoon)
	assert.Equal(t, 11, window.DaysRemaining, "partial days round up")

	past := now.Add(-time.Second)
	window = ComputeWindow(&past, now, soon)
	assert.True(t, window.IsExpired)
	assert.False(t, window.IsExpiringSoon)
	assert.Equal(t, 0, window.DaysRemaining)

	exactly := now
	window = ComputeWindow(&exactly, now, soon)
	assert.False(t, window.IsExpired, "now == endDate is not yet expired")
	assert.True(t, window.IsExpiringSoon)
	assert.Equal(t, 0, window.DaysRemaining)
}

func TestClassifyAlertsOrderAndDeterminism(t *testing.T) {
	state := domain.SubscriptionState{
		Status:         domain.StatusSuspended,
		PaymentPending: true,
		Window: domain.SubscriptionWindow{
			IsExpiringSoon: true,
			DaysRemaining:  5,
		},
	}
	usage := domain.UsageSet{
		Browse:  ComputeUsage(100, 100),
		Listing: ComputeUsage(10, 10),
	}

	first := ClassifyAlerts(state, usage)
	second := ClassifyAlerts(state, usage)
	assert.Equal(t, first, second, "classification must be deterministic")

	codes := make([]domain.AlertCode, 0, len(first))
	for _, a := range first {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []domain.AlertCode{
		domain.AlertPaymentPending,
		domain.AlertExpiringSoon,
		domain.AlertBrowseLimitReached,
		domain.AlertListingLimitReached,
		domain.AlertSuspended,
	}, codes)
}

func TestClassifyAlertsBrowseLimitAndSuspended(t *testing.T) {
	state := domain.SubscriptionState{Status: domain.StatusSuspended}
	usage := domain.UsageSet{Browse: ComputeUsage(50, 50)}

	alerts := ClassifyAlerts(state, usage)
	require.Len(t, alerts, 2)
	assert.Equal(t, domain.AlertBrowseLimitReached, alerts[0].Code)
	assert.Equal(t, domain.SeverityAdvisory, alerts[0].Severity)
	assert.Equal(t, domain.AlertSuspended, alerts[1].Code)
	assert.Equal(t, domain.SeverityCritical, alerts[1].Severity)
}

func TestClassifyAlertsExpiredSuppressesExpiringSoon(t *testing.T) {
	state := domain.SubscriptionState{
		Status: domain.StatusActive,
		Window: domain.SubscriptionWindow{IsExpired: true, IsExpiringSoon: false},
	}

	alerts := ClassifyAlerts(state, domain.UsageSet{})
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertExpired, alerts[0].Code)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
}

func TestClassifyAlertsAllClear(t *testing.T) {
	state := domain.SubscriptionState{Status: domain.StatusActive}
	alerts := ClassifyAlerts(state, domain.UsageSet{
		Browse:  ComputeUsage(1, 100),
		Listing: ComputeUsage(0, 10),
	})
	assert.Empty(t, alerts)
}

func TestStatusComposition(t *testing.T) {
	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&recordsdomain.Subscription{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := recordsrepository.New(dbConn, node)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	endDate := now.Add(5 * 24 * time.Hour)
	require.NoError(t, repo.Create(context.Background(), &recordsdomain.Subscription{
		InstituteID:    "inst-42",
		PlanCode:       "dealer-pro",
		Status:         domain.StatusActive,
		EndDate:        &endDate,
		BrowseUsed:     120,
		BrowseAllowed:  100,
		ListingUsed:    3,
		ListingAllowed: 10,
	}))

	svc := New(zap.NewNop(), config.QuotaConfig{ExpiringSoonThreshold: 30 * 24 * time.Hour}, repo, clock.NewFakeClock(now))

	status, err := svc.Status(context.Background(), "inst-42")
	require.NoError(t, err)
	assert.Equal(t, "dealer-pro", status.PlanCode)
	assert.True(t, status.Usage.Browse.LimitReached)
	assert.Equal(t, 100, status.Usage.Browse.Percentage)
	assert.False(t, status.Usage.Listing.LimitReached)
	assert.Equal(t, int64(7), status.Usage.Listing.Remaining)
	assert.True(t, status.State.Window.IsExpiringSoon)
	assert.Equal(t, 5, status.State.Window.DaysRemaining)

	codes := make([]domain.AlertCode, 0, len(status.Alerts))
	for _, a := range status.Alerts {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []domain.AlertCode{domain.AlertExpiringSoon, domain.AlertBrowseLimitReached}, codes)

	_, err = svc.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, recordsdomain.ErrSubscriptionNotFound)
}
