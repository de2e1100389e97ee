package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lectura bloqueante y escritura de products.stock. Pensado para usarse con una tx.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.Product, error) {
	query := `
		SELECT id, sku, nombre, stock, stock_minimo, stock_maximo, estado
		FROM productos WHERE id = $1
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Stock, &p.MinStock, &p.MaxStock, &p.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &p, nil
}

// SetStock escribe el nuevo stock y la auditoría de modificación.
func (r *StockRepo) SetStock(ctx context.Context, productID int64, stock int, actor string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = $2, modificado_por = $3, modificado_en = now() WHERE id = $1`,
		productID, stock, actor,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
