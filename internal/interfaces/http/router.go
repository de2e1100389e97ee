package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name         string
	Logger       *logger.Logger
	ExposeErrors bool
	Metrics      *Metrics // nil = sin /metrics
}

// NewApp crea la aplicación Fiber con el stack común: recover, request id, CORS abierto,
// log de peticiones y métricas. Los errores no controlados se responden con el envelope.
func NewApp(cfg AppConfig) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(Options{Logger: log, ExposeErrors: cfg.ExposeErrors}),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-Id",
		ExposeHeaders: "X-Request-Id",
	}))
	app.Use(RequestLogger(log.Named("http")))
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
		app.Get("/metrics", cfg.Metrics.Handler())
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	JWTSecret        string
	Logger           *logger.Logger
	ExposeErrors     bool
	Service          string
	Store            string                          // driver de persistencia informado en /health
	HealthCheck      func(ctx context.Context) error // nil = siempre sano
}

// Router registra las rutas de la API de funciones.
func Router(app *fiber.App, deps RouterDeps) {
	opts := Options{Logger: deps.Logger, ExposeErrors: deps.ExposeErrors}

	app.Get("/health", healthHandler(deps))

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	api.All("/products", NewProductHandler(deps.ProductUC, opts).Handle)
	api.All("/categories", NewCategoryHandler(deps.CategoryUC, opts).Handle)
	api.All("/warehouses", NewWarehouseHandler(deps.WarehouseUC, opts).Handle)
	api.All("/inventory/:action?", NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery, opts).Handle)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := fiber.Map{"status": "ok", "service": deps.Service, "store": deps.Store}
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				data["status"] = "degraded"
				if deps.ExposeErrors {
					data["detail"] = err.Error()
				}
				return c.Status(fiber.StatusServiceUnavailable).
					JSON(dto.Envelope{Success: false, Data: data, Error: "almacenamiento no disponible",
						Status: fiber.StatusServiceUnavailable, Timestamp: time.Now().UTC()})
			}
		}
		return c.JSON(dto.OK(data, "servicio operativo"))
	}
}
