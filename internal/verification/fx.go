package verification

import (
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/verification/domain"
	"github.com/otomarket/otomarket/internal/verification/notify"
	"github.com/otomarket/otomarket/internal/verification/repository"
	"github.com/otomarket/otomarket/internal/verification/service"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("verification",
	fx.Provide(newVerificationConfig),
	fx.Provide(NewStore),
	fx.Provide(notify.NewEmailNotifier),
	fx.Provide(service.New),
)

func newVerificationConfig(cfg config.Config) config.VerificationConfig {
	return cfg.Verification
}

// NewStore selects the record store backend from configuration.
func NewStore(cfg config.Config) domain.RecordStore {
	switch cfg.Verification.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return repository.NewRedisStore(client)
	default:
		return repository.NewMemoryStore()
	}
}
