package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, nombre, direccion, telefono, email, responsable, estado, capacidad_max, creado_en, modificado_en`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(&w.ID, &w.Name, &w.Address, &w.Phone, &w.Email, &w.Manager,
		&w.Status, &w.MaxCapacity, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO bodegas (nombre, direccion, telefono, email, responsable, estado, capacidad_max)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, creado_en, modificado_en`,
		w.Name, w.Address, w.Phone, w.Email, w.Manager, w.Status, w.MaxCapacity,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return mapWriteError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM bodegas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		UPDATE bodegas SET nombre = $2, direccion = $3, telefono = $4, email = $5, responsable = $6,
			estado = $7, capacidad_max = $8, modificado_en = now()
		WHERE id = $1
		RETURNING modificado_en`,
		w.ID, w.Name, w.Address, w.Phone, w.Email, w.Manager, w.Status, w.MaxCapacity,
	).Scan(&w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError("update warehouse", err)
	}
	return nil
}

// Delete elimina una bodega. ErrConflict si hay productos asignados.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bodegas WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete warehouse", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas ordenadas por id.
func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter) ([]*entity.Warehouse, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.MinCapacity > 0 {
		args = append(args, f.MinCapacity)
		conds = append(conds, fmt.Sprintf("capacidad_max >= $%d", len(args)))
	}
	query := `SELECT ` + warehouseColumns + ` FROM bodegas`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
