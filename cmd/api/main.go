package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/qmd-apps/inventario-ledger/internal/application/analytics"
	"github.com/qmd-apps/inventario-ledger/internal/application/ledger"
	"github.com/qmd-apps/inventario-ledger/internal/application/usecase"
	"github.com/qmd-apps/inventario-ledger/internal/domain/repository"
	infraai "github.com/qmd-apps/inventario-ledger/internal/infrastructure/ai"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/localstore"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/memstore"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/notify"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/postgres"
	"github.com/qmd-apps/inventario-ledger/internal/infrastructure/redisstore"
	httpRouter "github.com/qmd-apps/inventario-ledger/internal/interfaces/http"
	"github.com/qmd-apps/inventario-ledger/pkg/config"
	"github.com/qmd-apps/inventario-ledger/pkg/logger"
)

const alertHistoryLimit = 50

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// ── Adaptador de persistencia según configuración ─────────────────────────
	var store repository.Store
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = memstore.New()
	case config.DriverFile:
		fileStore, err := localstore.New(cfg.Storage.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir store de archivos")
		}
		store = fileStore
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	case config.DriverRedis:
		redisStore, err := redisstore.New(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		store = redisStore
	}

	// ── Motor de inventario ───────────────────────────────────────────────────
	alertSink := notify.NewMemorySink(alertHistoryLimit)
	sink := notify.NewFanout(notify.NewLogSink(log), alertSink)

	engine := ledger.New(store, sink, log)
	if err := engine.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("inicializar motor de inventario")
	}
	defer engine.Close()

	// ── Casos de uso ──────────────────────────────────────────────────────────
	dashboardUC := analytics.NewDashboardUseCase(engine)
	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	aiUC := usecase.NewAIUseCase(geminiSvc)

	// ── HTTP ──────────────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"service":     cfg.App.Name,
			"initialized": engine.Initialized(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:      engine,
		DashboardUC: dashboardUC,
		AIUC:        aiUC,
		AlertSink:   alertSink,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
