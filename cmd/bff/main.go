package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-serverless/internal/interfaces/bff"
	httpRouter "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/config"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: "bff",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("mode", cfg.BFF.Mode).
		Msg("iniciando BFF")

	var backend bff.Backend
	switch cfg.BFF.Mode {
	case config.BFFModeDirect:
		repos, err := storage.Open(context.Background(), cfg, log.Named("storage"))
		if err != nil {
			log.Fatal().Err(err).Msg("abrir almacenamiento")
		}
		defer repos.Close()
		backend = bff.NewDirectBackend(
			usecase.NewProductUseCase(repos.Products, log),
			usecase.NewWarehouseUseCase(repos.Warehouses),
			log.Named("direct"),
			cfg.App.ExposeErrors,
		)
	default:
		log.Info().
			Str("productos", cfg.BFF.ProductBaseURL).
			Str("bodegas", cfg.BFF.WarehouseBaseURL).
			Dur("timeout", cfg.BFF.Timeout).
			Msg("modo proxy")
		backend = bff.NewFunctionClient(cfg.BFF, log.Named("proxy"))
	}

	metrics := httpRouter.NewMetrics("bff")
	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name + "-bff",
		Logger:       log,
		ExposeErrors: cfg.App.ExposeErrors,
		Metrics:      metrics,
	})
	bff.Router(app, bff.NewGateway(backend, cfg.BFF.Mode, log.Named("gateway")), cfg.JWT.Secret)

	go func() {
		log.Info().Str("addr", cfg.BFF.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.BFF.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando BFF...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("BFF detenido")
}
