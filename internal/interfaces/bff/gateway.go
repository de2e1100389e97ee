package bff

import (
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	apphttp "github.com/jhoicas/inventario-serverless/internal/interfaces/http"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// Gateway traduce las rutas públicas a peticiones de Backend.
type Gateway struct {
	backend Backend
	mode    string
	log     *logger.Logger
}

// NewGateway construye el gateway. mode se informa en /api/health.
func NewGateway(backend Backend, mode string, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{backend: backend, mode: mode, log: log}
}

// Router registra las rutas del gateway. jwtSecret vacío = sin autenticación.
func Router(app *fiber.App, gw *Gateway, jwtSecret string) {
	api := app.Group("/api", apphttp.AuthMiddleware(jwtSecret))

	api.Get("/health", gw.Health)

	// stock-bajo antes de /:id
	api.Get("/productos/stock-bajo", gw.handle(ResourceLowStock, false))
	api.Get("/productos", gw.handle(ResourceProducts, false))
	api.Post("/productos", gw.handle(ResourceProducts, false))
	api.Get("/productos/:id", gw.handle(ResourceProducts, true))
	api.Put("/productos/:id", gw.handle(ResourceProducts, true))
	api.Delete("/productos/:id", gw.handle(ResourceProducts, true))

	api.Get("/bodegas", gw.handle(ResourceWarehouses, false))
	api.Post("/bodegas", gw.handle(ResourceWarehouses, false))
	api.Get("/bodegas/:id", gw.handle(ResourceWarehouses, true))
	api.Put("/bodegas/:id", gw.handle(ResourceWarehouses, true))
	api.Delete("/bodegas/:id", gw.handle(ResourceWarehouses, true))
}

// Health godoc
// @Summary  Estado del gateway
// @Tags     bff
// @Produce  json
// @Success  200  {object}  dto.Envelope
// @Router   /api/health [get]
func (g *Gateway) Health(c *fiber.Ctx) error {
	return c.JSON(dto.OK(fiber.Map{"status": "ok", "mode": g.mode}, "BFF operativo"))
}

func (g *Gateway) handle(resource Resource, withID bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := Request{
			Resource:      resource,
			Method:        c.Method(),
			Query:         queryValues(c),
			Body:          append([]byte(nil), c.Body()...),
			ContentType:   c.Get(fiber.HeaderContentType),
			Authorization: c.Get(fiber.HeaderAuthorization),
			Actor:         apphttp.GetActor(c),
		}
		if withID {
			id, err := strconv.ParseInt(c.Params("id"), 10, 64)
			if err != nil || id <= 0 {
				return c.Status(fiber.StatusBadRequest).
					JSON(dto.Fail(fiber.StatusBadRequest, "ID inválido", ""))
			}
			req.ID = id
		}

		start := time.Now()
		res, err := g.backend.Do(c.UserContext(), req)
		if err != nil {
			g.log.Error().Err(err).
				Str("resource", string(resource)).
				Str("method", req.Method).
				Msg("función no disponible")
			return c.Status(fiber.StatusBadGateway).
				JSON(dto.Fail(fiber.StatusBadGateway, "servicio de funciones no disponible", ""))
		}
		g.log.Debug().
			Str("resource", string(resource)).
			Str("method", req.Method).
			Int("status", res.Status).
			Dur("latency", time.Since(start)).
			Msg("bff")

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(res.Status).Send(res.Body)
	}
}

func queryValues(c *fiber.Ctx) url.Values {
	q := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		q.Add(string(key), string(value))
	})
	return q
}
