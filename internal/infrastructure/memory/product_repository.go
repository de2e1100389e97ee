package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository sobre Store.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio de productos en memoria.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.skuTaken(p.SKU, 0) {
		return domain.ErrDuplicate
	}
	if err := r.s.checkRefs(p); err != nil {
		return err
	}
	now := r.s.now()
	p.ID = r.s.next("productos")
	p.CreatedAt, p.UpdatedAt = now, now
	if p.CreatedBy == "" {
		p.CreatedBy = entity.DefaultActor
	}
	p.UpdatedBy = p.CreatedBy
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.withNames(p), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return r.s.withNames(p), nil
		}
	}
	return nil, nil
}

// Update sobrescribe los campos editables; conserva stock y datos de creación.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.s.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	if err := r.s.checkRefs(p); err != nil {
		return err
	}
	next := cloneProduct(p)
	next.Stock = cur.Stock
	next.CreatedAt = cur.CreatedAt
	next.CreatedBy = cur.CreatedBy
	next.UpdatedAt = r.s.now()
	next.CategoryName, next.WarehouseName = "", ""
	r.s.products[p.ID] = next

	p.Stock = next.Stock
	p.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	name := strings.ToLower(f.NameLike)
	return r.s.sortedProducts(func(p *entity.Product) bool {
		switch {
		case f.ProductID > 0 && p.ID != f.ProductID:
			return false
		case f.CategoryID > 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID):
			return false
		case f.WarehouseID > 0 && (p.WarehouseID == nil || *p.WarehouseID != f.WarehouseID):
			return false
		case f.Status != "" && p.Status != f.Status:
			return false
		case name != "" && !strings.Contains(strings.ToLower(p.Name), name):
			return false
		}
		return true
	}), nil
}

func (r *ProductRepo) ListAlerts(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.sortedProducts(func(p *entity.Product) bool {
		return p.Stock <= p.MinStock || (p.MaxStock != nil && p.Stock >= *p.MaxStock)
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Stock < list[j].Stock })
	return list, nil
}

func (r *ProductRepo) Summary(_ context.Context) (*repository.InventorySummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := &repository.InventorySummary{TotalValue: decimal.Zero}
	for _, p := range r.s.products {
		if p.IsActive() {
			sum.TotalProducts++
			sum.TotalUnits += int64(p.Stock)
			sum.TotalValue = sum.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		}
		if p.Stock <= p.MinStock {
			sum.LowStockCount++
		}
		if p.Stock == 0 {
			sum.OutOfStockCount++
		}
	}
	return sum, nil
}

func (r *ProductRepo) TopByStock(_ context.Context, limit int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.sortedProducts((*entity.Product).IsActive)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Stock > list[j].Stock })
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}
