package quota

import (
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/quota/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quota",
	fx.Provide(newQuotaConfig),
	fx.Provide(service.New),
)

func newQuotaConfig(cfg config.Config) config.QuotaConfig {
	return cfg.Quota
}
