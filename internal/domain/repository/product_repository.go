package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// ProductFilter filtros opcionales de listado. Cero = sin filtro.
type ProductFilter struct {
	CategoryID  int64
	WarehouseID int64
	ProductID   int64
	Status      string
	NameLike    string
}

// InventorySummary agregados del reporte de inventario (solo productos ACTIVO, salvo los contadores de stock).
type InventorySummary struct {
	TotalProducts   int
	TotalValue      decimal.Decimal
	TotalUnits      int64
	LowStockCount   int
	OutOfStockCount int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// List ordena por id ascendente e incluye nombres de categoría y bodega.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListAlerts productos con stock <= mínimo o stock >= máximo, ordenados por stock ascendente.
	ListAlerts(ctx context.Context) ([]*entity.Product, error)
	Summary(ctx context.Context) (*InventorySummary, error)
	TopByStock(ctx context.Context, limit int) ([]*entity.Product, error)
}
