package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo WarehouseRepository sobre Store.
type WarehouseRepo struct {
	s *Store
}

// NewWarehouseRepository construye el repositorio de bodegas en memoria.
func NewWarehouseRepository(s *Store) *WarehouseRepo {
	return &WarehouseRepo{s: s}
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	w.ID = r.s.next("bodegas")
	w.CreatedAt, w.UpdatedAt = now, now
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.warehouses[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	w.CreatedAt = cur.CreatedAt
	w.UpdatedAt = r.s.now()
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *WarehouseRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.WarehouseID != nil && *p.WarehouseID == id {
			return fmt.Errorf("%w: el registro está referenciado por productos", domain.ErrConflict)
		}
	}
	delete(r.s.warehouses, id)
	return nil
}

func (r *WarehouseRepo) List(_ context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		if f.Status != "" && w.Status != f.Status {
			continue
		}
		if f.MinCapacity > 0 && w.MaxCapacity < f.MinCapacity {
			continue
		}
		cp := *w
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
