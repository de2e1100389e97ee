package repository

import (
	"context"

	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// StockRepository define el puerto para leer/escribir products.stock dentro de una transacción.
type StockRepository interface {
	// GetForUpdate lee el producto y bloquea su fila (SELECT FOR UPDATE) hasta fin de la tx.
	// Devuelve domain.ErrNotFound si no existe.
	GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error)
	SetStock(ctx context.Context, productID int64, stock int, actor string) error
}
