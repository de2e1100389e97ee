package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) List(ctx context.Context, filter repository.CategoryFilter) ([]dto.CategoryResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return items, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := toCategoryResponse(c)
	return &out, nil
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: in.Name, Description: in.Description, Status: in.Status}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	c.Status = in.Status
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Delete elimina la categoría; ErrConflict si tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
