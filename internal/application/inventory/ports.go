package inventory

import (
	"context"

	"github.com/jhoicas/inventario-serverless/internal/application/dto"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de stock atado a esa tx. Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}

// MovementObserver recibe el resultado de cada movimiento (métricas).
// result: "applied", "insufficient_stock", "not_found", "invalid", "error".
type MovementObserver interface {
	ObserveMovement(kind, result string)
}

// ReportRenderer genera la representación PDF del reporte de inventario.
type ReportRenderer interface {
	RenderReport(ctx context.Context, report *dto.ReportResponse) ([]byte, error)
}

type nopObserver struct{}

func (nopObserver) ObserveMovement(string, string) {}
