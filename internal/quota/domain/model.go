// Package domain contains derived subscription and usage views. Everything
// here is computed fresh on every query; nothing is stored.
package domain

import "time"

// Resource names a tracked quota.
type Resource string

const (
	ResourceBrowse  Resource = "browse"
	ResourceListing Resource = "listing"
)

// Subscription status values as supplied by the records system.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// UsageLimit is the derived view over one raw used/allowed counter pair.
// Allowed == 0 means no limit is configured for the resource.
type UsageLimit struct {
	Used         int64 `json:"used"`
	Allowed      int64 `json:"allowed"`
	Percentage   int   `json:"percentage"`
	Remaining    int64 `json:"remaining"`
	LimitReached bool  `json:"limit_reached"`
}

// SubscriptionWindow is the derived view over a subscription end date.
type SubscriptionWindow struct {
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsExpired      bool       `json:"is_expired"`
	IsExpiringSoon bool       `json:"is_expiring_soon"`
	DaysRemaining  int        `json:"days_remaining"`
}

// SubscriptionState bundles the externally supplied facts alert
// classification runs over.
type SubscriptionState struct {
	Status         string             `json:"status"`
	PaymentPending bool               `json:"payment_pending"`
	Window         SubscriptionWindow `json:"window"`
}

// UsageSet holds the tracked resources of one institute.
type UsageSet struct {
	Browse  UsageLimit `json:"browse"`
	Listing UsageLimit `json:"listing"`
}

type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityCritical Severity = "critical"
)

type AlertCode string

const (
	AlertPaymentPending      AlertCode = "payment_pending"
	AlertExpired             AlertCode = "subscription_expired"
	AlertExpiringSoon        AlertCode = "subscription_expiring_soon"
	AlertBrowseLimitReached  AlertCode = "browse_limit_reached"
	AlertListingLimitReached AlertCode = "listing_limit_reached"
	AlertSuspended           AlertCode = "account_suspended"
)

// Alert is one classified condition with a populated message.
type Alert struct {
	Code     AlertCode `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// Status is the full side-effect-free quota view for one institute.
type Status struct {
	InstituteID string             `json:"institute_id"`
	PlanCode    string             `json:"plan_code"`
	State       SubscriptionState  `json:"state"`
	Usage       UsageSet           `json:"usage"`
	Alerts      []Alert            `json:"alerts"`
}
