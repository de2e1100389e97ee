package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/usecase"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// ProductHandler maneja /api/products con despacho por método.
type ProductHandler struct {
	responder
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, opts Options) *ProductHandler {
	r := opts.responder()
	r.notFound = "Producto no encontrado"
	r.duplicate = "Ya existe un producto con ese SKU"
	return &ProductHandler{responder: r, uc: uc}
}

// Handle godoc
// @Summary      Productos (listar, obtener, crear, actualizar, eliminar)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id         query  int     false  "ID del producto"
// @Param        categoria  query  int     false  "Filtrar por categoría"
// @Param        bodega     query  int     false  "Filtrar por bodega"
// @Param        estado     query  string  false  "ACTIVO | INACTIVO"
// @Param        nombre     query  string  false  "Búsqueda parcial por nombre"
// @Param        body       body   dto.ProductRequest  false  "Datos del producto (POST/PUT)"
// @Success      200  {object}  dto.Envelope
// @Success      201  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      405  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/products [get]
func (h *ProductHandler) Handle(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodGet:
		return h.get(c)
	case fiber.MethodPost:
		return h.create(c)
	case fiber.MethodPut:
		return h.update(c)
	case fiber.MethodDelete:
		return h.delete(c)
	}
	return h.methodNotAllowed(c)
}

func (h *ProductHandler) get(c *fiber.Ctx) error {
	id, hasID, err := queryID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if hasID {
		out, err := h.uc.GetByID(c.UserContext(), id)
		if err != nil {
			return h.fail(c, err)
		}
		return h.ok(c, fiber.StatusOK, out, "Producto encontrado exitosamente")
	}

	categoryID, byCategory, err := queryID(c, "categoria")
	if err != nil {
		return h.fail(c, err)
	}
	warehouseID, byWarehouse, err := queryID(c, "bodega")
	if err != nil {
		return h.fail(c, err)
	}
	items, err := h.uc.List(c.UserContext(), repository.ProductFilter{
		CategoryID:  categoryID,
		WarehouseID: warehouseID,
		Status:      c.Query("estado"),
		NameLike:    c.Query("nombre"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	msg := "Productos obtenidos exitosamente"
	switch {
	case byCategory:
		msg = "Productos obtenidos por categoría exitosamente"
	case byWarehouse:
		msg = "Productos obtenidos por bodega exitosamente"
	}
	return h.list(c, items, len(items), msg)
}

func (h *ProductHandler) create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in, GetActor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusCreated, out, "Producto creado exitosamente")
}

func (h *ProductHandler) update(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, GetActor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, out, "Producto actualizado exitosamente")
}

func (h *ProductHandler) delete(c *fiber.Ctx) error {
	id, err := requireID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, fiber.Map{"id": id}, "Producto eliminado exitosamente")
}
