package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de registro comunes a productos, categorías y bodegas.
const (
	StatusActive   = "ACTIVO"
	StatusInactive = "INACTIVO"
)

// DefaultUnitMeasure unidad por defecto de un producto.
const DefaultUnitMeasure = "UNIDAD"

// DefaultActor etiqueta de auditoría cuando no hay usuario identificado.
const DefaultActor = "Sistema"

// Product representa un producto (SKU) con su stock actual y umbrales.
// Stock solo cambia vía movimientos de inventario.
type Product struct {
	ID          int64
	SKU         string // único
	Name        string
	Description string
	Stock       int
	MinStock    int
	MaxStock    *int // nil = sin máximo
	Price       decimal.Decimal
	CategoryID  *int64
	WarehouseID *int64
	Status      string
	UnitMeasure string
	Weight      *decimal.Decimal
	Dimensions  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	UpdatedBy   string

	// Solo lectura: nombres resueltos por join en listados de inventario.
	CategoryName  string
	WarehouseName string
}

// IsActive indica si el producto participa en reportes.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}
