package repository

import (
	"context"

	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// WarehouseFilter filtros de listado de bodegas.
type WarehouseFilter struct {
	Status      string
	MinCapacity int // capacidad_max >= MinCapacity
}

// WarehouseRepository puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter WarehouseFilter) ([]*entity.Warehouse, error)
}
