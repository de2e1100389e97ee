package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// CategoryHandler maneja /api/categories.
type CategoryHandler struct {
	responder
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, opts Options) *CategoryHandler {
	r := opts.responder()
	r.notFound = "Categoría no encontrada"
	r.duplicate = "Ya existe una categoría con ese nombre"
	return &CategoryHandler{responder: r, uc: uc}
}

// Handle godoc
// @Summary      Categorías
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id      query  int     false  "ID de la categoría"
// @Param        estado  query  string  false  "ACTIVO | INACTIVO"
// @Param        body    body   dto.CategoryRequest  false  "Datos (POST/PUT)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/categories [get]
func (h *CategoryHandler) Handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodGet:
		return h.get(c)
	case fiber.MethodPost:
		var in dto.CategoryRequest
		if err := parseBody(c, &in); err != nil {
			return h.fail(c, err)
		}
		out, err := h.uc.Create(c.UserContext(), in)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusCreated, out, "Categoría creada exitosamente")
	case fiber.MethodPut:
		id, err := requireID(c, "id")
		if err != nil {
			return h.fail(c, err)
		}
		var in dto.CategoryRequest
		if err := parseBody(c, &in); err != nil {
			return h.fail(c, err)
		}
		out, err := h.uc.Update(c.UserContext(), id, in)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, out, "Categoría actualizada exitosamente")
	case fiber.MethodDelete:
		id, err := requireID(c, "id")
		if err != nil {
			return h.fail(c, err)
		}
		if err := h.uc.Delete(c.UserContext(), id); err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, fiber.Map{"id": id}, "Categoría eliminada exitosamente")
	}
	return h.methodNotAllowed(c)
}

func (h *CategoryHandler) get(c *fiber.Ctx) error {
	id, hasID, err := queryID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if hasID {
		out, err := h.uc.GetByID(c.UserContext(), id)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, out, "Categoría encontrada exitosamente")
	}
	items, err := h.uc.List(c.UserContext(), repository.CategoryFilter{Status: c.Query("estado")})
	if err != nil {
		return h.fail(c, err)
	}
	return h.list(c, items, len(items), "Categorías obtenidas exitosamente")
}
