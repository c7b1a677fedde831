package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"materialapi/docs"
	"materialapi/internal/config"
	"materialapi/internal/converter"
	"materialapi/internal/database"
	"materialapi/internal/database/migration"
	handlers "materialapi/internal/http/handler"
	"materialapi/internal/http/middleware"
	"materialapi/internal/logger"
	tracing "materialapi/internal/otel"
	"materialapi/internal/repository/postgres"
	"materialapi/internal/service"
	"materialapi/internal/storage"
)

// @title Course Material API
// @version 1.0
// @description Upload, list, update and view course materials.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	// PostgreSQL connection (pooled via database/sql) and schema bootstrap
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	conv, err := newConverter(cfg, reg, log)
	if err != nil {
		log.Fatal("failed to initialize converter", zap.Error(err))
	}

	materialSvc := service.NewMaterialService(
		store,
		postgres.NewMaterialPostgres(db),
		postgres.NewTopicPostgres(db),
		postgres.NewMaterialTypePostgres(db),
		conv,
		service.WithLogger(log),
		service.WithWorkDir(cfg.Storage.WorkDir),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.MaxUploadBytes(),
		DisableStartupMessage: true,
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg, "/metrics")
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}

	// Global middleware: tracing, X-Request-ID, request log, request metrics
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, materialSvc, store, cfg.PathBase)

	// Swagger UI with dynamic host and scheme
	docs.SwaggerInfo.BasePath = "/"
	if cfg.PathBase != "" {
		docs.SwaggerInfo.BasePath = cfg.PathBase
	}
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		if docs.SwaggerInfo.Host == "" {
			docs.SwaggerInfo.Host = cfg.AppHost
		}
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("server_shutting_down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting",
		zap.String("addr", addr),
		zap.String("path_base", cfg.PathBase),
		zap.String("storage_driver", cfg.Storage.Driver),
	)
	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", zap.Error(err))
	}
}

func newStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMinIO:
		return storage.NewMinIO(ctx, cfg.MinIO)
	case config.StorageDriverLocal, "":
		return storage.NewLocal(cfg.Storage.WebRoot)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newConverter(cfg *config.AppConfig, reg prometheus.Registerer, log *zap.Logger) (converter.Converter, error) {
	metrics, err := converter.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	office := converter.NewOffice(cfg.Converter.SofficePath, time.Duration(cfg.Converter.TimeoutSec)*time.Second)
	if err := office.Ready(); err != nil {
		// Office formats fail at view time; everything else keeps working.
		log.Warn("soffice_unavailable", zap.Error(err))
	}

	return converter.NewRegistry(
		[]converter.Backend{office, converter.NewText()},
		converter.WithValidation(cfg.Converter.ValidateOutput),
		converter.WithMetrics(metrics),
		converter.WithLogger(log),
	), nil
}
