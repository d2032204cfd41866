package records

import (
	"github.com/otomarket/otomarket/internal/records/domain"
	"github.com/otomarket/otomarket/internal/records/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("records",
	fx.Provide(repository.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Subscription{})
}
