package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/ProfitManager-api/internal/application/auth"
	"github.com/jhoicas/ProfitManager-api/internal/application/compras"
	"github.com/jhoicas/ProfitManager-api/internal/application/inventory"
	"github.com/jhoicas/ProfitManager-api/internal/application/usecase"
	"github.com/jhoicas/ProfitManager-api/internal/application/ventas"
	httpRouter "github.com/jhoicas/ProfitManager-api/internal/interfaces/http"
	"github.com/jhoicas/ProfitManager-api/pkg/config"
	"github.com/jhoicas/ProfitManager-api/pkg/logger"
)

const (
	swaggerFile  = "./docs/swagger.json"
	devJWTSecret = "dev-only-secret"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer r.close()
	log.Info().Str("storage", cfg.App.Storage).Msg("almacenamiento listo")

	deps := httpRouter.RouterDeps{
		ClienteUC:     usecase.NewClienteUseCase(r.clientes),
		BodegaUC:      usecase.NewBodegaUseCase(r.bodegas),
		ProductoUC:    usecase.NewProductoUseCase(r.productos),
		VencimientoUC: usecase.NewVencimientoUseCase(r.vencimientos, r.productos, r.bodegas, cfg.Vencimientos.DiasAlerta),
		InventarioUC:  inventory.NewInventarioUseCase(r.tx, r.inventario, r.productos, r.bodegas),
		VentaUC:       ventas.NewVentaUseCase(r.tx, r.ventas, r.clientes, r.productos, r.bodegas),
		OrdenCompraUC: compras.NewOrdenCompraUseCase(r.tx, r.ordenes, r.productos, r.bodegas),
		AuthUC: auth.NewAuthUseCase(r.usuarios, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		JWTSecret: cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	metrics := httpRouter.NewMetrics()
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.HTTP.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	// Swagger UI en http://localhost:<port>/docs, solo si se generó docs/swagger.json
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "ProfitManager API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, deps)

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
