package dto

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/inventory"
)

// Límites de longitud de producto.
const (
	MaxSKULength         = 50
	MaxProductNameLength = 120
)

// ProductRequest entrada para crear o actualizar un producto.
// En actualización Stock se ignora: el stock solo cambia vía movimientos.
type ProductRequest struct {
	SKU         string           `json:"sku"`
	Name        string           `json:"nombre"`
	Description string           `json:"descripcion"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"stock_minimo"`
	MaxStock    *int             `json:"stock_maximo"`
	Price       *decimal.Decimal `json:"precio"`
	CategoryID  *int64           `json:"categoria_id"`
	WarehouseID *int64           `json:"bodega_id"`
	Status      string           `json:"estado"`
	UnitMeasure string           `json:"unidad_medida"`
	Weight      *decimal.Decimal `json:"peso"`
	Dimensions  string           `json:"dimensiones"`
}

// Normalize recorta textos y aplica valores por defecto explícitos.
func (r *ProductRequest) Normalize() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Dimensions = strings.TrimSpace(r.Dimensions)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = entity.StatusActive
	}
	r.UnitMeasure = strings.ToUpper(strings.TrimSpace(r.UnitMeasure))
	if r.UnitMeasure == "" {
		r.UnitMeasure = entity.DefaultUnitMeasure
	}
	if r.Stock == nil {
		r.Stock = intPtr(0)
	}
	if r.MinStock == nil {
		r.MinStock = intPtr(0)
	}
	if r.Price == nil {
		zero := decimal.Zero
		r.Price = &zero
	}
}

// Validate verifica el request ya normalizado.
func (r *ProductRequest) Validate() error {
	switch {
	case r.SKU == "":
		return domain.Invalid("sku", "es requerido")
	case utf8.RuneCountInString(r.SKU) > MaxSKULength:
		return domain.Invalid("sku", "máximo 50 caracteres")
	case r.Name == "":
		return domain.Invalid("nombre", "es requerido")
	case utf8.RuneCountInString(r.Name) > MaxProductNameLength:
		return domain.Invalid("nombre", "máximo 120 caracteres")
	case r.Stock != nil && *r.Stock < 0:
		return domain.Invalid("stock", "no puede ser negativo")
	case r.Stock != nil && *r.Stock > inventory.MaxUnits:
		return domain.Invalid("stock", "excede el máximo permitido")
	case r.MinStock != nil && *r.MinStock < 0:
		return domain.Invalid("stock_minimo", "no puede ser negativo")
	case r.MinStock != nil && *r.MinStock > inventory.MaxUnits:
		return domain.Invalid("stock_minimo", "excede el máximo permitido")
	case r.MaxStock != nil && *r.MaxStock > inventory.MaxUnits:
		return domain.Invalid("stock_maximo", "excede el máximo permitido")
	case r.MaxStock != nil && r.MinStock != nil && *r.MaxStock < *r.MinStock:
		return domain.Invalid("stock_maximo", "debe ser mayor o igual a stock_minimo")
	case r.Price != nil && r.Price.IsNegative():
		return domain.Invalid("precio", "no puede ser negativo")
	case r.Weight != nil && r.Weight.IsNegative():
		return domain.Invalid("peso", "no puede ser negativo")
	case r.CategoryID != nil && *r.CategoryID <= 0:
		return domain.Invalid("categoria_id", "identificador inválido")
	case r.WarehouseID != nil && *r.WarehouseID <= 0:
		return domain.Invalid("bodega_id", "identificador inválido")
	}
	return validateStatus(r.Status)
}

// ProductResponse salida de un producto. EstadoStock es calculado.
type ProductResponse struct {
	ID            int64            `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"nombre"`
	Description   string           `json:"descripcion"`
	Stock         int              `json:"stock"`
	MinStock      int              `json:"stock_minimo"`
	MaxStock      *int             `json:"stock_maximo"`
	Price         decimal.Decimal  `json:"precio"`
	CategoryID    *int64           `json:"categoria_id"`
	WarehouseID   *int64           `json:"bodega_id"`
	Status        string           `json:"estado"`
	UnitMeasure   string           `json:"unidad_medida"`
	Weight        *decimal.Decimal `json:"peso,omitempty"`
	Dimensions    string           `json:"dimensiones,omitempty"`
	StockStatus   string           `json:"estado_stock"`
	CategoryName  string           `json:"categoria_nombre,omitempty"`
	WarehouseName string           `json:"bodega_nombre,omitempty"`
	CreatedAt     time.Time        `json:"creado_en"`
	UpdatedAt     time.Time        `json:"modificado_en"`
	CreatedBy     string           `json:"creado_por,omitempty"`
	UpdatedBy     string           `json:"modificado_por,omitempty"`
}

func intPtr(n int) *int { return &n }

func validateStatus(s string) error {
	if s != entity.StatusActive && s != entity.StatusInactive {
		return domain.Invalid("estado", "debe ser ACTIVO o INACTIVO")
	}
	return nil
}
