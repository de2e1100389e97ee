// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORE_DRIVER=memory (demo sin base de datos) y en los tests de handlers.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria. Aplica las mismas
// restricciones que el esquema SQL: SKU único, referencias existentes y borrado restringido.
type Store struct {
	mu         sync.RWMutex
	products   map[int64]*entity.Product
	categories map[int64]*entity.Category
	warehouses map[int64]*entity.Warehouse
	nextID     map[string]int64

	// un mutex por producto; equivale al bloqueo de fila de SELECT FOR UPDATE
	rowLocks map[int64]*sync.Mutex

	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[int64]*entity.Product),
		categories: make(map[int64]*entity.Category),
		warehouses: make(map[int64]*entity.Warehouse),
		nextID:     map[string]int64{"productos": 1, "categorias": 1, "bodegas": 1},
		rowLocks:   make(map[int64]*sync.Mutex),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) next(table string) int64 {
	id := s.nextID[table]
	s.nextID[table] = id + 1
	return id
}

func (s *Store) rowLock(id int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	return l
}

// checkRefs valida las llaves foráneas de un producto. Llamar con s.mu tomado.
func (s *Store) checkRefs(p *entity.Product) error {
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return &domain.ValidationError{Field: "categoria_id", Message: "referencia inexistente"}
		}
	}
	if p.WarehouseID != nil {
		if _, ok := s.warehouses[*p.WarehouseID]; !ok {
			return &domain.ValidationError{Field: "bodega_id", Message: "referencia inexistente"}
		}
	}
	return nil
}

func (s *Store) skuTaken(sku string, exceptID int64) bool {
	for _, p := range s.products {
		if p.ID != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

// withNames copia el producto y resuelve nombres de categoría y bodega. Llamar con s.mu tomado.
func (s *Store) withNames(p *entity.Product) *entity.Product {
	cp := cloneProduct(p)
	if cp.CategoryID != nil {
		if c, ok := s.categories[*cp.CategoryID]; ok {
			cp.CategoryName = c.Name
		}
	}
	if cp.WarehouseID != nil {
		if w, ok := s.warehouses[*cp.WarehouseID]; ok {
			cp.WarehouseName = w.Name
		}
	}
	return cp
}

func (s *Store) sortedProducts(keep func(*entity.Product) bool) []*entity.Product {
	list := make([]*entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep == nil || keep(p) {
			list = append(list, s.withNames(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.MaxStock != nil {
		v := *p.MaxStock
		cp.MaxStock = &v
	}
	if p.CategoryID != nil {
		v := *p.CategoryID
		cp.CategoryID = &v
	}
	if p.WarehouseID != nil {
		v := *p.WarehouseID
		cp.WarehouseID = &v
	}
	if p.Weight != nil {
		v := *p.Weight
		cp.Weight = &v
	}
	return &cp
}
