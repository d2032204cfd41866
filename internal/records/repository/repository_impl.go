package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/otomarket/otomarket/internal/records/domain"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func New(db *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &repositoryImpl{db: db, genID: genID}
}

func (r *repositoryImpl) Create(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID == 0 {
		sub.ID = r.genID.Generate()
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repositoryImpl) FindByInstitute(ctx context.Context, instituteID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Where("institute_id = ?", instituteID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repositoryImpl) IncrementUsage(ctx context.Context, instituteID, resource string) error {
	var column string
	switch resource {
	case "browse":
		column = "browse_used"
	case "listing":
		column = "listing_used"
	default:
		return fmt.Errorf("unknown usage resource %q", resource)
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("institute_id = ?", instituteID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *repositoryImpl) SetStatus(ctx context.Context, instituteID, status string, paymentPending bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("institute_id = ?", instituteID).
		Updates(map[string]any{
			"status":          status,
			"payment_pending": paymentPending,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
