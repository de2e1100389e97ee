package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// Mensajes de error genéricos.
const (
	msgInternal         = "error interno"
	msgMethodNotAllowed = "Método no soportado"
	msgInvalidBody      = "cuerpo JSON inválido"
)

// responder escribe envelopes y traduce errores de dominio a códigos HTTP.
// notFound y duplicate personalizan el texto por recurso.
type responder struct {
	log          *logger.Logger
	exposeErrors bool
	notFound     string
	duplicate    string
}

func (r responder) ok(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(dto.OK(data, message))
}

func (r responder) list(c *fiber.Ctx, data interface{}, total int, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.OKList(data, total, message))
}

// fail escribe el envelope de error correspondiente a err.
func (r responder) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	msg := err.Error()
	switch {
	case status == fiber.StatusNotFound && r.notFound != "":
		msg = r.notFound
	case status == fiber.StatusConflict && errors.Is(err, domain.ErrDuplicate) && r.duplicate != "":
		msg = r.duplicate
	case status >= fiber.StatusInternalServerError:
		if r.log != nil {
			r.log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		if !r.exposeErrors {
			msg = msgInternal
		}
	}
	return c.Status(status).JSON(dto.Fail(status, msg, ""))
}

func (r responder) methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).
		JSON(dto.Fail(fiber.StatusMethodNotAllowed, msgMethodNotAllowed, ""))
}

// StatusFor clasifica un error en su código HTTP.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// queryID lee un identificador entero positivo de la query. ok=false si está ausente.
func queryID(c *fiber.Ctx, key string) (id int64, ok bool, err error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, true, domain.Invalid(key, "identificador inválido")
	}
	return id, true, nil
}

// requireID igual que queryID pero el parámetro es obligatorio.
func requireID(c *fiber.Ctx, key string) (int64, error) {
	id, ok, err := queryID(c, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.Invalid(key, "es requerido")
	}
	return id, nil
}

// parseBody decodifica el cuerpo JSON. Un cuerpo malformado es error de validación.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Invalid("", msgInvalidBody)
	}
	return nil
}

// ErrorHandler maneja errores que escapan de los handlers (rutas inexistentes, pánicos recuperados).
func ErrorHandler(opts Options) fiber.ErrorHandler {
	r := opts.responder()
	return func(c *fiber.Ctx, err error) error {
		return r.fail(c, err)
	}
}

// Options configura el manejo de errores de los handlers.
type Options struct {
	Logger       *logger.Logger
	ExposeErrors bool // incluir el detalle de errores 5xx en la respuesta
}

func (o Options) responder() responder {
	log := o.Logger
	if log == nil {
		log = logger.Nop()
	}
	return responder{log: log, exposeErrors: o.ExposeErrors}
}
