package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/application/inventory"
)

// Acciones de /api/inventory/{action}.
const (
	actionList     = "list"
	actionMovement = "movement"
	actionAdjust   = "adjust"
	actionAlerts   = "alerts"
	actionReport   = "report"
)

// InventoryHandler maneja /api/inventory y sus acciones.
type InventoryHandler struct {
	responder
	movements *inventory.RegisterMovementUseCase
	queries   *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, queries *inventory.QueryUseCase, opts Options) *InventoryHandler {
	r := opts.responder()
	r.notFound = "Producto no encontrado"
	return &InventoryHandler{responder: r, movements: movements, queries: queries}
}

// Handle godoc
// @Summary      Inventario: listado, movimientos, ajustes, alertas y reporte
// @Description  Acción desconocida o vacía equivale a list.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        action       path   string  false  "list | movement | adjust | alerts | report"
// @Param        producto_id  query  int     false  "Filtrar por producto (list)"
// @Param        bodega_id    query  int     false  "Filtrar por bodega (list)"
// @Param        categoria    query  int     false  "Filtrar por categoría (list)"
// @Param        format       query  string  false  "pdf (report)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      405  {object}  dto.Envelope
// @Router       /api/inventory/{action} [get]
func (h *InventoryHandler) Handle(c *fiber.Ctx) error {
	action := strings.ToLower(c.Params("action"))
	switch action {
	case actionMovement:
		if c.Method() != fiber.MethodPost {
			return h.methodNotAllowed(c)
		}
		return h.registerMovement(c)
	case actionAdjust:
		if c.Method() != fiber.MethodPut {
			return h.methodNotAllowed(c)
		}
		return h.adjust(c)
	case actionAlerts:
		if c.Method() != fiber.MethodGet {
			return h.methodNotAllowed(c)
		}
		return h.alerts(c)
	case actionReport:
		if c.Method() != fiber.MethodGet {
			return h.methodNotAllowed(c)
		}
		return h.report(c)
	}
	if c.Method() != fiber.MethodGet {
		return h.methodNotAllowed(c)
	}
	return h.listInventory(c)
}

func (h *InventoryHandler) listInventory(c *fiber.Ctx) error {
	var f dto.InventoryFilter
	var err error
	if f.ProductID, _, err = queryID(c, "producto_id"); err != nil {
		return h.fail(c, err)
	}
	if f.WarehouseID, _, err = queryID(c, "bodega_id"); err != nil {
		return h.fail(c, err)
	}
	if f.CategoryID, _, err = queryID(c, "categoria"); err != nil {
		return h.fail(c, err)
	}
	items, err := h.queries.List(c.UserContext(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return h.list(c, items, len(items), "Inventario obtenido exitosamente")
}

func (h *InventoryHandler) registerMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.movements.Register(c.UserContext(), in, GetActor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, out, "Movimiento registrado exitosamente")
}

func (h *InventoryHandler) adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	out, err := h.movements.Adjust(c.UserContext(), in, GetActor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, out, "Stock ajustado exitosamente")
}

func (h *InventoryHandler) alerts(c *fiber.Ctx) error {
	items, err := h.queries.Alerts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return h.list(c, items, len(items), "Alertas de stock obtenidas exitosamente")
}

func (h *InventoryHandler) report(c *fiber.Ctx) error {
	if strings.EqualFold(c.Query("format"), "pdf") {
		doc, err := h.queries.ReportPDF(c.UserContext())
		if err != nil {
			return h.fail(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
		return c.Send(doc)
	}
	out, err := h.queries.Report(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return h.ok(c, fiber.StatusOK, out, "Reporte generado exitosamente")
}
