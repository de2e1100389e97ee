package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// Seed carga datos de demostración: 2 categorías, 2 bodegas y 4 productos
// que cubren los cuatro estados de stock.
func Seed(ctx context.Context, s *Store) error {
	categories := NewCategoryRepository(s)
	warehouses := NewWarehouseRepository(s)
	products := NewProductRepository(s)

	cats := []*entity.Category{
		{Name: "Electrónica", Description: "Equipos y accesorios electrónicos", Status: entity.StatusActive},
		{Name: "Oficina", Description: "Artículos de oficina", Status: entity.StatusActive},
	}
	for _, c := range cats {
		if err := categories.Create(ctx, c); err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
	}

	whs := []*entity.Warehouse{
		{Name: "Bodega Central", Address: "Av. Principal 123", Phone: "+56 2 2345 6789",
			Email: "central@inventario.local", Manager: "Ana Rojas", Status: entity.StatusActive, MaxCapacity: 10000},
		{Name: "Bodega Norte", Address: "Calle Norte 45", Manager: "Luis Soto",
			Status: entity.StatusActive, MaxCapacity: 2500},
	}
	for _, w := range whs {
		if err := warehouses.Create(ctx, w); err != nil {
			return fmt.Errorf("seed warehouse: %w", err)
		}
	}

	ptr := func(n int) *int { return &n }
	prods := []*entity.Product{
		{SKU: "ELEC-001", Name: "Notebook 14\"", Stock: 25, MinStock: 5, MaxStock: ptr(100),
			Price: decimal.RequireFromString("649990"), CategoryID: &cats[0].ID, WarehouseID: &whs[0].ID},
		{SKU: "ELEC-002", Name: "Mouse inalámbrico", Stock: 3, MinStock: 10, MaxStock: ptr(200),
			Price: decimal.RequireFromString("12990"), CategoryID: &cats[0].ID, WarehouseID: &whs[0].ID},
		{SKU: "OFI-001", Name: "Resma papel carta", Stock: 0, MinStock: 20, MaxStock: ptr(500),
			Price: decimal.RequireFromString("4590"), CategoryID: &cats[1].ID, WarehouseID: &whs[1].ID},
		{SKU: "OFI-002", Name: "Archivador palanca", Stock: 320, MinStock: 30, MaxStock: ptr(300),
			Price: decimal.RequireFromString("2490"), CategoryID: &cats[1].ID, WarehouseID: &whs[1].ID},
	}
	for _, p := range prods {
		p.Status = entity.StatusActive
		p.UnitMeasure = entity.DefaultUnitMeasure
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}
	return nil
}
