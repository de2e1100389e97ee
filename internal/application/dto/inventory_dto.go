package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/inventory"
)

// DefaultAdjustReason motivo por defecto de un ajuste.
const DefaultAdjustReason = "Ajuste manual"

// MovementRequest entrada de POST /api/inventory/movement.
type MovementRequest struct {
	ProductID int64  `json:"producto_id"`
	Kind      string `json:"tipo_movimiento"`
	Quantity  *int   `json:"cantidad"`
	Reason    string `json:"motivo"`
	Actor     string `json:"usuario"`
}

// Normalize recorta campos; el actor por defecto lo decide el caso de uso.
func (r *MovementRequest) Normalize() {
	r.Kind = strings.TrimSpace(r.Kind)
	r.Reason = strings.TrimSpace(r.Reason)
	r.Actor = strings.TrimSpace(r.Actor)
}

// Validate verifica campos requeridos (el tipo se valida al parsear).
func (r *MovementRequest) Validate() error {
	switch {
	case r.ProductID <= 0:
		return domain.Invalid("producto_id", "es requerido")
	case r.Kind == "":
		return domain.Invalid("tipo_movimiento", "es requerido")
	case r.Quantity == nil:
		return domain.Invalid("cantidad", "es requerida")
	case *r.Quantity < 0:
		return domain.Invalid("cantidad", "no puede ser negativa")
	case *r.Quantity > inventory.MaxUnits:
		return domain.Invalid("cantidad", "excede el máximo permitido")
	}
	return nil
}

// AdjustRequest entrada de PUT /api/inventory/adjust.
type AdjustRequest struct {
	ProductID int64  `json:"producto_id"`
	NewStock  *int   `json:"nuevo_stock"`
	Reason    string `json:"motivo"`
	Actor     string `json:"usuario"`
}

// ToMovement convierte el ajuste en un movimiento AJUSTE.
func (r AdjustRequest) ToMovement() MovementRequest {
	reason := strings.TrimSpace(r.Reason)
	if reason == "" {
		reason = DefaultAdjustReason
	}
	return MovementRequest{
		ProductID: r.ProductID,
		Kind:      "AJUSTE",
		Quantity:  r.NewStock,
		Reason:    reason,
		Actor:     r.Actor,
	}
}

// MovementResponse resultado de un movimiento aplicado.
type MovementResponse struct {
	ProductID     int64     `json:"producto_id"`
	SKU           string    `json:"sku"`
	Kind          string    `json:"tipo_movimiento"`
	Quantity      int       `json:"cantidad"`
	PreviousStock int       `json:"stock_anterior"`
	NewStock      int       `json:"stock_nuevo"`
	StockStatus   string    `json:"estado_stock"`
	Reason        string    `json:"motivo,omitempty"`
	Actor         string    `json:"usuario"`
	Reference     string    `json:"referencia"`
	Date          time.Time `json:"fecha"`
}

// InventoryFilter filtros de GET /api/inventory.
type InventoryFilter struct {
	ProductID   int64
	WarehouseID int64
	CategoryID  int64
}

// InventoryItem fila del listado de inventario.
type InventoryItem struct {
	ProductID     int64           `json:"producto_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"nombre"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"stock_minimo"`
	MaxStock      *int            `json:"stock_maximo"`
	Price         decimal.Decimal `json:"precio"`
	CategoryName  string          `json:"categoria_nombre,omitempty"`
	WarehouseName string          `json:"bodega_nombre,omitempty"`
	StockStatus   string          `json:"estado_stock"`
}

// AlertItem producto fuera de umbral.
type AlertItem struct {
	InventoryItem
	AlertType string `json:"tipo_alerta"`
	Severity  string `json:"severidad"`
}

// ReportResponse agregados de inventario.
type ReportResponse struct {
	TotalProducts   int             `json:"total_productos"`
	TotalValue      decimal.Decimal `json:"valor_total_inventario"`
	TotalUnits      int64           `json:"total_unidades"`
	LowStockCount   int             `json:"productos_stock_bajo"`
	OutOfStockCount int             `json:"productos_sin_stock"`
	TopProducts     []InventoryItem `json:"top_productos"`
	GeneratedAt     time.Time       `json:"generado_en"`
}
