package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID          int64
	Name        string
	Address     string
	Phone       string
	Email       string
	Manager     string // responsable
	Status      string
	MaxCapacity int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
