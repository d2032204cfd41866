package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/observability/logger"
	quotadomain "github.com/otomarket/otomarket/internal/quota/domain"
	recordsdomain "github.com/otomarket/otomarket/internal/records/domain"
	verificationdomain "github.com/otomarket/otomarket/internal/verification/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

// Server wires the core services to the HTTP surface.
type Server struct {
	log          *zap.Logger
	verification verificationdomain.Service
	quota        quotadomain.Service
	records      recordsdomain.Repository
}

func NewServer(log *zap.Logger, verification verificationdomain.Service, quota quotadomain.Service, records recordsdomain.Repository) *Server {
	return &Server{
		log:          log.Named("http.server"),
		verification: verification,
		quota:        quota,
		records:      records,
	}
}

func NewEngine(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerRoutes(r *gin.Engine, s *Server) {
	v1 := r.Group("/v1")

	codes := v1.Group("/verification")
	codes.POST("/codes", s.issueCode)
	codes.POST("/codes/resend", s.resendCode)
	codes.POST("/attempts", s.verifyCode)
	codes.DELETE("/codes/:identifier", s.revokeCode)

	institutes := v1.Group("/institutes")
	institutes.GET("/:institute_id/quota", s.quotaStatus)
	institutes.POST("/:institute_id/usage/:resource", s.incrementUsage)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
