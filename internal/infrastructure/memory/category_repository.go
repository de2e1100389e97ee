package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo CategoryRepository sobre Store.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio de categorías en memoria.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	c.ID = r.s.next("categorias")
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return fmt.Errorf("%w: el registro está referenciado por productos", domain.ErrConflict)
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) List(_ context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
