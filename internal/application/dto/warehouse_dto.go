package dto

import (
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/inventario-serverless/internal/domain"
	"github.com/jhoicas/inventario-serverless/internal/domain/entity"
	"github.com/jhoicas/inventario-serverless/internal/domain/inventory"
)

// WarehouseRequest entrada para crear o actualizar una bodega.
type WarehouseRequest struct {
	Name        string `json:"nombre"`
	Address     string `json:"direccion"`
	Phone       string `json:"telefono"`
	Email       string `json:"email"`
	Manager     string `json:"responsable"`
	Status      string `json:"estado"`
	MaxCapacity *int   `json:"capacidad_max"`
}

// Normalize recorta y aplica valores por defecto.
func (r *WarehouseRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)
	r.Manager = strings.TrimSpace(r.Manager)
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = entity.StatusActive
	}
	if r.MaxCapacity == nil {
		r.MaxCapacity = intPtr(0)
	}
}

// Validate verifica el request ya normalizado.
func (r *WarehouseRequest) Validate() error {
	if r.Name == "" {
		return domain.Invalid("nombre", "es requerido")
	}
	if r.MaxCapacity != nil && *r.MaxCapacity < 0 {
		return domain.Invalid("capacidad_max", "no puede ser negativa")
	}
	if r.MaxCapacity != nil && *r.MaxCapacity > inventory.MaxUnits {
		return domain.Invalid("capacidad_max", "excede el máximo permitido")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return domain.Invalid("email", "formato inválido")
		}
	}
	return validateStatus(r.Status)
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Address     string    `json:"direccion"`
	Phone       string    `json:"telefono"`
	Email       string    `json:"email"`
	Manager     string    `json:"responsable"`
	Status      string    `json:"estado"`
	MaxCapacity int       `json:"capacidad_max"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"modificado_en"`
}
