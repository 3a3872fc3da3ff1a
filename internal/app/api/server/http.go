package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gatherly/pulse/docs"
	"github.com/gatherly/pulse/internal/app/api/handlers"
	"github.com/gatherly/pulse/internal/app/service/checkin"
	"github.com/gatherly/pulse/internal/app/service/milestone"
	"github.com/gatherly/pulse/internal/app/service/phase"
	"github.com/gatherly/pulse/internal/app/service/points"
	"github.com/gatherly/pulse/internal/app/service/stats"
	cfgpkg "github.com/gatherly/pulse/pkg/config"

	mw "github.com/gatherly/pulse/internal/app/api/middleware"

	metrics "github.com/gatherly/pulse/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(r *gin.Engine, log *zap.SugaredLogger, cfg *cfgpkg.Config, checkinSvc *checkin.Service, phaseSvc *phase.Service, pointsSvc *points.Service, milestoneSvc *milestone.Service, statsSvc *stats.Service) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected group using auth middleware
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.AuthRequired(cfg), mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())

	handlers.RegisterCheckinRoutes(apiV1, checkinSvc)
	handlers.RegisterPhaseRoutes(apiV1, phaseSvc)
	handlers.RegisterRankingRoutes(apiV1, pointsSvc)
	handlers.RegisterMilestoneRoutes(apiV1, milestoneSvc)

	// Admin APIs
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), checkinSvc, statsSvc, pointsSvc)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
