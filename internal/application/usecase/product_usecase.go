package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/inventory"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
	"github.com/jhoicas/inventario-serverless/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso. log puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, log: log.Named("products")}
}

// List lista productos con filtros opcionales, ordenados por id.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
	filter.NameLike = strings.TrimSpace(filter.NameLike)
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// LowStock productos con stock en o bajo el mínimo (incluye sin stock).
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0)
	for _, p := range list {
		if p.Stock <= p.MinStock {
			items = append(items, *toProductResponse(p))
		}
	}
	return items, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Create crea un producto. El SKU debe ser único; la restricción de la BD es la garantía final.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest, actor string) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	if actor == "" {
		actor = entity.DefaultActor
	}
	product := &entity.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Stock:       *in.Stock,
		MinStock:    *in.MinStock,
		MaxStock:    in.MaxStock,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		WarehouseID: in.WarehouseID,
		Status:      in.Status,
		UnitMeasure: in.UnitMeasure,
		Weight:      in.Weight,
		Dimensions:  in.Dimensions,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product)
}

// Update sobrescribe todos los campos editables. El stock no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest, actor string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	in.Stock = nil
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	if actor == "" {
		actor = entity.DefaultActor
	}
	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.MinStock = *in.MinStock
	product.MaxStock = in.MaxStock
	product.Price = *in.Price
	product.CategoryID = in.CategoryID
	product.WarehouseID = in.WarehouseID
	product.Status = in.Status
	product.UnitMeasure = in.UnitMeasure
	product.Weight = in.Weight
	product.Dimensions = in.Dimensions
	product.UpdatedBy = actor
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product)
}

// Delete elimina un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// reload relee el producto para devolver nombres de categoría/bodega resueltos.
// La escritura ya se confirmó: si la relectura falla se registra y se responde con lo escrito.
func (uc *ProductUseCase) reload(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	fresh, err := uc.repo.GetByID(ctx, p.ID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("producto_id", p.ID).Msg("no se pudo releer el producto")
		return toProductResponse(p), nil
	}
	if fresh == nil {
		uc.log.Warn().Int64("producto_id", p.ID).Msg("producto no encontrado al releer")
		return toProductResponse(p), nil
	}
	return toProductResponse(fresh), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		Price:         p.Price,
		CategoryID:    p.CategoryID,
		WarehouseID:   p.WarehouseID,
		Status:        p.Status,
		UnitMeasure:   p.UnitMeasure,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		StockStatus:   string(inventory.Classify(p.Stock, p.MinStock, p.MaxStock)),
		CategoryName:  p.CategoryName,
		WarehouseName: p.WarehouseName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		CreatedBy:     p.CreatedBy,
		UpdatedBy:     p.UpdatedBy,
	}
}
