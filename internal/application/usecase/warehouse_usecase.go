package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// List lista bodegas; MinCapacity filtra por capacidad_max.
func (uc *WarehouseUseCase) List(ctx context.Context, filter repository.WarehouseFilter) ([]dto.WarehouseResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, toWarehouseResponse(w))
	}
	return items, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	w := &entity.Warehouse{
		Name:        in.Name,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		Manager:     in.Manager,
		Status:      in.Status,
		MaxCapacity: *in.MaxCapacity,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

// Update sobrescribe los datos de la bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	w.Name = in.Name
	w.Address = in.Address
	w.Phone = in.Phone
	w.Email = in.Email
	w.Manager = in.Manager
	w.Status = in.Status
	w.MaxCapacity = *in.MaxCapacity
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	out := toWarehouseResponse(w)
	return &out, nil
}

// Delete elimina una bodega; ErrConflict si tiene productos asignados.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toWarehouseResponse(w *entity.Warehouse) dto.WarehouseResponse {
	return dto.WarehouseResponse{
		ID:          w.ID,
		Name:        w.Name,
		Address:     w.Address,
		Phone:       w.Phone,
		Email:       w.Email,
		Manager:     w.Manager,
		Status:      w.Status,
		MaxCapacity: w.MaxCapacity,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
