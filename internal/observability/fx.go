package observability

import (
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/observability/logger"
	"github.com/otomarket/otomarket/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(newLoggerConfig),
	fx.Provide(logger.New),
	fx.Provide(newRegistry),
	fx.Provide(newMetrics),
)

func newLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}
}

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func newMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(reg)
}
