package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-serverless/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// mapWriteError traduce errores de INSERT/UPDATE: único -> ErrDuplicate, FK -> referencia inexistente.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return &domain.ValidationError{Field: fkField(pgErr.ConstraintName), Message: "referencia inexistente"}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapDeleteError traduce errores de DELETE: FK -> ErrConflict (hay filas que lo referencian).
func mapDeleteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: el registro está referenciado por productos", domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func fkField(constraint string) string {
	switch constraint {
	case "productos_categoria_id_fkey":
		return "categoria_id"
	case "productos_bodega_id_fkey":
		return "bodega_id"
	}
	return constraint
}
