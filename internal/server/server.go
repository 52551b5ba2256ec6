package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dukastack/dukani/internal/activity"
	activitydomain "github.com/dukastack/dukani/internal/activity/domain"
	"github.com/dukastack/dukani/internal/clock"
	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/expiry"
	expirydomain "github.com/dukastack/dukani/internal/expiry/domain"
	"github.com/dukastack/dukani/internal/importer"
	importerdomain "github.com/dukastack/dukani/internal/importer/domain"
	"github.com/dukastack/dukani/internal/inventory"
	inventorydomain "github.com/dukastack/dukani/internal/inventory/domain"
	"github.com/dukastack/dukani/internal/observability/metrics"
	"github.com/dukastack/dukani/internal/providers/pdf"
	"github.com/dukastack/dukani/internal/report"
	reportdomain "github.com/dukastack/dukani/internal/report/domain"
)

// Server carries the HTTP surface and the services it fronts.
type Server struct {
	cfg   config.Config
	log   *zap.Logger
	clock clock.Clock

	inventory inventorydomain.Service
	expiry    expirydomain.Service
	report    reportdomain.Service
	importer  importerdomain.Service
	activity  activitydomain.Service
	pdf       *pdf.Provider
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock

	Inventory inventorydomain.Service
	Expiry    expirydomain.Service
	Report    reportdomain.Service
	Importer  importerdomain.Service
	Activity  activitydomain.Service
	PDF       *pdf.Provider
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:       p.Config,
		log:       p.Log.Named("server"),
		clock:     p.Clock,
		inventory: p.Inventory,
		expiry:    p.Expiry,
		report:    p.Report,
		importer:  p.Importer,
		activity:  p.Activity,
		pdf:       p.PDF,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(log),
		metrics.GinMiddleware(m),
		ErrorHandlingMiddleware(),
	)
	return engine
}

func RegisterRoutes(engine *gin.Engine, s *Server) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": s.cfg.AppName,
			"version": s.cfg.AppVersion,
		})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/items", s.ListItems)
		api.GET("/items/search", s.SuggestItems)
		api.GET("/items/added", s.ItemsAddedOn)
		api.POST("/items", s.AddItem)
		api.PUT("/items/:id", s.UpdateItem)
		api.DELETE("/items/:id", s.DeleteItem)
		api.POST("/items/:id/sell", s.SellItem)
		api.PUT("/items/:id/price", s.ChangePrice)

		api.GET("/search", s.SearchItems)
		api.GET("/sales/today", s.SalesToday)

		api.GET("/dashboard", s.Dashboard)
		api.GET("/statistics", s.Statistics)
		api.GET("/reports/substitutes", s.Substitutes)

		api.GET("/price-variations", s.PriceVariations)
		api.DELETE("/price-variations/:id", s.DeletePriceVariation)
		api.GET("/price-variations/export.csv", s.ExportPriceVariationsCSV)
		api.GET("/price-variations/export.pdf", s.ExportPriceVariationsPDF)

		api.GET("/expiry", s.ExpiryStatuses)
		api.PUT("/expiry", s.SetExpiryBulk)
		api.PUT("/expiry/:item", s.SetExpiry)

		api.POST("/import", s.ImportStock)
		api.GET("/activities", s.RecentActivities)
	}
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
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

var Module = fx.Module("server",
	clock.Module,
	activity.Module,
	inventory.Module,
	expiry.Module,
	report.Module,
	importer.Module,
	pdf.Module,
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RunHTTP),
)
