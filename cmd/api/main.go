package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/rescate-api/internal/application/auth"
	appbag "github.com/jhoicas/rescate-api/internal/application/bag"
	apppartner "github.com/jhoicas/rescate-api/internal/application/partner"
	"github.com/jhoicas/rescate-api/internal/infrastructure/blob"
	"github.com/jhoicas/rescate-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/rescate-api/internal/interfaces/http"
	"github.com/jhoicas/rescate-api/pkg/config"
	"github.com/jhoicas/rescate-api/pkg/logger"
)

const swaggerSpecPath = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partnerRepo := postgres.NewPartnerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	bagRepo := postgres.NewBagRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	blobStore, err := blob.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de uploads")
	}

	authUC := auth.NewAuthUseCase(partnerRepo, customerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	resolver := auth.NewIdentityResolver(partnerRepo, customerRepo, cfg.JWT.Secret)
	partnerUC := apppartner.NewPartnerUseCase(partnerRepo)
	bagUC := appbag.NewBagUseCase(bagRepo)
	reserveUC := appbag.NewReserveUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware hace panic si el archivo no existe; sin spec, la API
	// arranca igual, solo sin documentación servida.
	if _, err := os.Stat(swaggerSpecPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecPath,
			Path:     "docs",
			Title:    "Rescate API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpecPath).Msg("spec de swagger no encontrado, UI deshabilitada")
	}

	// Imágenes subidas (thumbnails)
	app.Static("/static/uploads", cfg.Uploads.Dir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Resolver:  resolver,
		PartnerUC: partnerUC,
		BagUC:     bagUC,
		ReserveUC: reserveUC,
		Blob:      blobStore,
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
