package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-serverless/internal/domain/inventory"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// TopProductsLimit cantidad de productos en el ranking del reporte.
const TopProductsLimit = 5

// QueryUseCase consultas de inventario: listado con estado de stock, alertas y reporte.
type QueryUseCase struct {
	products repository.ProductRepository
	renderer ReportRenderer
	now      func() time.Time
}

// NewQueryUseCase construye el caso de uso. renderer puede ser nil si no se sirve PDF.
func NewQueryUseCase(products repository.ProductRepository, renderer ReportRenderer) *QueryUseCase {
	return &QueryUseCase{products: products, renderer: renderer, now: time.Now}
}

// List inventario filtrado por producto, bodega o categoría.
func (uc *QueryUseCase) List(ctx context.Context, f dto.InventoryFilter) ([]dto.InventoryItem, error) {
	list, err := uc.products.List(ctx, repository.ProductFilter{
		ProductID:   f.ProductID,
		WarehouseID: f.WarehouseID,
		CategoryID:  f.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItem, 0, len(list))
	for _, p := range list {
		items = append(items, toInventoryItem(p))
	}
	return items, nil
}

// Alerts productos fuera de umbral, del menor al mayor stock.
func (uc *QueryUseCase) Alerts(ctx context.Context) ([]dto.AlertItem, error) {
	list, err := uc.products.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertItem, 0, len(list))
	for _, p := range list {
		status := domaininv.Classify(p.Stock, p.MinStock, p.MaxStock)
		if !status.IsAlert() {
			continue
		}
		items = append(items, dto.AlertItem{
			InventoryItem: toInventoryItem(p),
			AlertType:     string(status),
			Severity:      status.Severity(),
		})
	}
	return items, nil
}

// Report agregados del inventario y top de productos por stock.
func (uc *QueryUseCase) Report(ctx context.Context) (*dto.ReportResponse, error) {
	sum, err := uc.products.Summary(ctx)
	if err != nil {
		return nil, err
	}
	top, err := uc.products.TopByStock(ctx, TopProductsLimit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItem, 0, len(top))
	for _, p := range top {
		items = append(items, toInventoryItem(p))
	}
	return &dto.ReportResponse{
		TotalProducts:   sum.TotalProducts,
		TotalValue:      sum.TotalValue,
		TotalUnits:      sum.TotalUnits,
		LowStockCount:   sum.LowStockCount,
		OutOfStockCount: sum.OutOfStockCount,
		TopProducts:     items,
		GeneratedAt:     uc.now().UTC(),
	}, nil
}

// ReportPDF genera el reporte y lo renderiza en PDF.
func (uc *QueryUseCase) ReportPDF(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("report pdf: renderer no configurado")
	}
	report, err := uc.Report(ctx)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderReport(ctx, report)
}

func toInventoryItem(p *entity.Product) dto.InventoryItem {
	return dto.InventoryItem{
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		Price:         p.Price,
		CategoryName:  p.CategoryName,
		WarehouseName: p.WarehouseName,
		StockStatus:   string(domaininv.Classify(p.Stock, p.MinStock, p.MaxStock)),
	}
}
