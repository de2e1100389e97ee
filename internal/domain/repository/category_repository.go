package repository

import (
	"context"

	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// CategoryFilter filtros de listado de categorías.
type CategoryFilter struct {
	Status string
}

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, error)
}
