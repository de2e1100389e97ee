package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// WarehouseHandler maneja /api/warehouses.
type WarehouseHandler struct {
	responder
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, opts Options) *WarehouseHandler {
	r := opts.responder()
	r.notFound = "Bodega no encontrada"
	r.duplicate = "Ya existe una bodega con ese nombre"
	return &WarehouseHandler{responder: r, uc: uc}
}

// Handle godoc
// @Summary      Bodegas
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id             query  int     false  "ID de la bodega"
// @Param        estado         query  string  false  "ACTIVO | INACTIVO"
// @Param        capacidad_min  query  int     false  "Capacidad máxima mínima"
// @Param        body           body   dto.WarehouseRequest  false  "Datos (POST/PUT)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) Handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodGet:
		return h.get(c)
	case fiber.MethodPost:
		var in dto.WarehouseRequest
		if err := parseBody(c, &in); err != nil {
			return h.fail(c, err)
		}
		out, err := h.uc.Create(c.UserContext(), in)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusCreated, out, "Bodega creada exitosamente")
	case fiber.MethodPut:
		id, err := requireID(c, "id")
		if err != nil {
			return h.fail(c, err)
		}
		var in dto.WarehouseRequest
		if err := parseBody(c, &in); err != nil {
			return h.fail(c, err)
		}
		out, err := h.uc.Update(c.UserContext(), id, in)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, out, "Bodega actualizada exitosamente")
	case fiber.MethodDelete:
		id, err := requireID(c, "id")
		if err != nil {
			return h.fail(c, err)
		}
		if err := h.uc.Delete(c.UserContext(), id); err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, fiber.Map{"id": id}, "Bodega eliminada exitosamente")
	}
	return h.methodNotAllowed(c)
}

func (h *WarehouseHandler) get(c *fiber.Ctx) error {
	id, hasID, err := queryID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if hasID {
		out, err := h.uc.GetByID(c.UserContext(), id)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, out, "Bodega encontrada exitosamente")
	}
	filter := repository.WarehouseFilter{Status: c.Query("estado")}
	if raw := c.Query("capacidad_min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return h.fail(c, domain.Invalid("capacidad_min", "debe ser un entero no negativo"))
		}
		filter.MinCapacity = n
	}
	items, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return h.list(c, items, len(items), "Bodegas obtenidas exitosamente")
}
