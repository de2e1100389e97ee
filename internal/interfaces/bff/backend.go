// Package bff implementa el gateway público /api/productos y /api/bodegas.
// En modo proxy reenvía a la API de funciones; en modo direct usa los casos de uso en proceso.
package bff

import (
	"context"
	"net/url"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	domaininv "github.com/jhoicas/inventario-serverless/internal/domain/inventory"
)

// Resource recurso expuesto por el gateway.
type Resource string

const (
	ResourceProducts   Resource = "products"
	ResourceWarehouses Resource = "warehouses"
	// ResourceLowStock productos con stock en o bajo el mínimo (solo GET).
	ResourceLowStock Resource = "low-stock"
)

// Request petición normalizada que reciben los backends.
type Request struct {
	Resource      Resource
	Method        string
	ID            int64      // 0 = colección
	Query         url.Values // filtros reenviados (categoria, bodega, estado, nombre, ...)
	Body          []byte
	ContentType   string
	Authorization string
	Actor         string // usuario autenticado en el gateway, si lo hay
}

// Result respuesta de un backend. En éxito Body es el campo data ya desenvuelto;
// en error es el envelope completo.
type Result struct {
	Status int
	Body   []byte
}

// Backend resuelve peticiones del gateway. Un error indica fallo de transporte (502).
type Backend interface {
	Do(ctx context.Context, req Request) (*Result, error)
}

// isLowStock criterio de stock bajo compartido por ambos modos.
func isLowStock(p dto.ProductResponse) bool {
	switch domaininv.StockStatus(p.StockStatus) {
	case domaininv.StatusLowStock, domaininv.StatusOutOfStock:
		return true
	}
	return false
}
