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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.sku, p.nombre, p.descripcion, p.stock, p.stock_minimo, p.stock_maximo, p.precio,
	p.categoria_id, p.bodega_id, p.estado, p.unidad_medida, p.peso, p.dimensiones,
	p.creado_en, p.modificado_en, p.creado_por, p.modificado_por,
	COALESCE(c.nombre, ''), COALESCE(b.nombre, '')`

const productFrom = `
	FROM productos p
	LEFT JOIN categorias c ON c.id = p.categoria_id
	LEFT JOIN bodegas b ON b.id = p.bodega_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Stock, &p.MinStock, &p.MaxStock, &p.Price,
		&p.CategoryID, &p.WarehouseID, &p.Status, &p.UnitMeasure, &p.Weight, &p.Dimensions,
		&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
		&p.CategoryName, &p.WarehouseName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto y completa ID y fechas generados por la BD.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (sku, nombre, descripcion, stock, stock_minimo, stock_maximo, precio,
			categoria_id, bodega_id, estado, unidad_medida, peso, dimensiones, creado_por, modificado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING id, creado_en, modificado_en, modificado_por`
	err := r.q.QueryRow(ctx, query,
		p.SKU, p.Name, p.Description, p.Stock, p.MinStock, p.MaxStock, p.Price,
		p.CategoryID, p.WarehouseID, p.Status, p.UnitMeasure, p.Weight, p.Dimensions, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.UpdatedBy)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU. (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update sobrescribe los campos editables. No modifica stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET sku = $2, nombre = $3, descripcion = $4, stock_minimo = $5, stock_maximo = $6,
			precio = $7, categoria_id = $8, bodega_id = $9, estado = $10, unidad_medida = $11, peso = $12,
			dimensiones = $13, modificado_por = $14, modificado_en = now()
		WHERE id = $1
		RETURNING modificado_en`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.MinStock, p.MaxStock, p.Price,
		p.CategoryID, p.WarehouseID, p.Status, p.UnitMeasure, p.Weight, p.Dimensions, p.UpdatedBy,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapWriteError("update product", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos filtrados, ordenados por id.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID > 0 {
		add("p.id = $%d", f.ProductID)
	}
	if f.CategoryID > 0 {
		add("p.categoria_id = $%d", f.CategoryID)
	}
	if f.WarehouseID > 0 {
		add("p.bodega_id = $%d", f.WarehouseID)
	}
	if f.Status != "" {
		add("p.estado = $%d", f.Status)
	}
	if f.NameLike != "" {
		add("p.nombre ILIKE '%%' || $%d || '%%'", f.NameLike)
	}

	query := `SELECT ` + productColumns + productFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// ListAlerts productos con stock <= mínimo o stock >= máximo, ordenados por stock ascendente.
func (r *ProductRepo) ListAlerts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.stock <= p.stock_minimo OR (p.stock_maximo IS NOT NULL AND p.stock >= p.stock_maximo)
		ORDER BY p.stock ASC, p.id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	return collectProducts(rows)
}

// Summary agregados para el reporte de inventario.
func (r *ProductRepo) Summary(ctx context.Context) (*repository.InventorySummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE estado = 'ACTIVO'),
			COALESCE(SUM(stock * precio) FILTER (WHERE estado = 'ACTIVO'), 0),
			COALESCE(SUM(stock) FILTER (WHERE estado = 'ACTIVO'), 0),
			COUNT(*) FILTER (WHERE stock <= stock_minimo),
			COUNT(*) FILTER (WHERE stock = 0)
		FROM productos`
	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.TotalValue, &s.TotalUnits, &s.LowStockCount, &s.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &s, nil
}

// TopByStock productos activos con mayor stock.
func (r *ProductRepo) TopByStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + productFrom + `
		WHERE p.estado = 'ACTIVO'
		ORDER BY p.stock DESC, p.id ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products by stock: %w", err)
	}
	return collectProducts(rows)
}
