package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
)

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Status      string `json:"estado"`
}

// Normalize recorta y aplica estado por defecto.
func (r *CategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = entity.StatusActive
	}
}

// Validate verifica el request ya normalizado.
func (r *CategoryRequest) Validate() error {
	if r.Name == "" {
		return domain.Invalid("nombre", "es requerido")
	}
	return validateStatus(r.Status)
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Status      string    `json:"estado"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"modificado_en"`
}
