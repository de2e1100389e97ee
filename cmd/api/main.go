package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventario-serverless/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/config"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando API de funciones")

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, log.Named("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer repos.Close()

	metrics := httpRouter.NewMetrics("inventario")

	productUC := usecase.NewProductUseCase(repos.Products, log)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses)
	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.TxRunner, metrics, log)
	// PDF: reporte de inventario
	queryUC := inventory.NewQueryUseCase(repos.Products, infrapdf.NewReportPDFGenerator(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		Logger:       log,
		ExposeErrors: cfg.App.ExposeErrors,
		Metrics:      metrics,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		WarehouseUC:      warehouseUC,
		RegisterMovement: registerMovementUC,
		InventoryQuery:   queryUC,
		JWTSecret:        cfg.JWT.Secret,
		Logger:           log,
		ExposeErrors:     cfg.App.ExposeErrors,
		Service:          cfg.App.Name,
		Store:            repos.Driver,
		HealthCheck:      repos.Ping,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
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
