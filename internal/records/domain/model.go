// Package domain contains the subscription record types sourced from the
// billing/records system. The quota tracker only reads these figures; it
// never owns them.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subscription is one institute's plan row: raw usage counters, plan limits
// and the subscription window.
type Subscription struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	InstituteID    string       `gorm:"column:institute_id;type:text;not null;uniqueIndex"`
	PlanCode       string       `gorm:"column:plan_code;type:text;not null"`
	Status         string       `gorm:"column:status;type:text;not null;default:active"`
	PaymentPending bool         `gorm:"column:payment_pending;not null;default:false"`
	EndDate        *time.Time   `gorm:"column:end_date"`
	BrowseUsed     int64        `gorm:"column:browse_used;not null;default:0"`
	BrowseAllowed  int64        `gorm:"column:browse_allowed;not null;default:0"`
	ListingUsed    int64        `gorm:"column:listing_used;not null;default:0"`
	ListingAllowed int64        `gorm:"column:listing_allowed;not null;default:0"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }
