package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appauth "github.com/jhoicas/inventario-sync/internal/application/auth"
	"github.com/jhoicas/inventario-sync/internal/application/usecase"
	"github.com/jhoicas/inventario-sync/internal/domain/catalog"
	"github.com/jhoicas/inventario-sync/internal/domain/repository"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/csvsource"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/deliverect"
	"github.com/jhoicas/inventario-sync/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-sync/internal/interfaces/http"
	"github.com/jhoicas/inventario-sync/pkg/config"
	"github.com/jhoicas/inventario-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("catalog_source", cfg.Catalog.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Fuente del catálogo: CSV local o PostgreSQL, según configuración.
	var source repository.CatalogSource
	switch cfg.Catalog.Source {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewCatalogSource(pool)
	case "csv":
		source = csvsource.NewLoader(cfg.Catalog.CSVPath)
	default:
		log.Fatal().Str("source", cfg.Catalog.Source).Msg("CATALOG_SOURCE debe ser csv o postgres")
	}

	rows, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	store := catalog.NewStore(rows)
	log.Info().Int("items", store.Len()).Msg("catálogo cargado")

	headerProvider := deliverect.NewStaticTokenProvider(cfg.Deliverect.Token)
	client := deliverect.NewHTTPClient(
		cfg.Deliverect.APIBaseURL,
		headerProvider,
		time.Duration(cfg.Deliverect.SlotTimeoutSeconds)*time.Second,
		time.Duration(cfg.Deliverect.UploadTimeoutSeconds)*time.Second,
	)

	catalogUC := usecase.NewCatalogUseCase(store)
	syncUC := usecase.NewSyncUseCase(store, client, usecase.SyncConfig{
		AccountID:   cfg.Deliverect.AccountID,
		CallbackURL: cfg.Deliverect.CallbackURL,
		Location:    cfg.Catalog.Location,
	}, log)
	authUC := appauth.NewAuthUseCase(
		appauth.Credentials{
			Username:     cfg.Operator.Username,
			PasswordHash: cfg.Operator.PasswordHash,
		},
		appauth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Sync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		SyncUC:    syncUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
