package inventory

import (
	"math"
	"strings"

	"github.com/jhoicas/inventario-serverless/internal/domain"
)

// MaxUnits tope de stock y cantidades; la columna stock es INTEGER.
const MaxUnits = math.MaxInt32

// MovementKind tipo de movimiento de stock.
type MovementKind string

const (
	KindInbound  MovementKind = "INBOUND"  // entrada
	KindOutbound MovementKind = "OUTBOUND" // salida
	KindAdjust   MovementKind = "ADJUST"   // ajuste a valor absoluto
)

// ParseMovementKind acepta los nombres en español (ENTRADA, SALIDA, AJUSTE) y en inglés,
// sin distinguir mayúsculas.
func ParseMovementKind(s string) (MovementKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENTRADA", "INBOUND", "IN":
		return KindInbound, nil
	case "SALIDA", "OUTBOUND", "OUT":
		return KindOutbound, nil
	case "AJUSTE", "ADJUST", "ADJUSTMENT":
		return KindAdjust, nil
	}
	return "", domain.Invalid("tipo_movimiento", "debe ser ENTRADA, SALIDA o AJUSTE")
}

// ApplyMovement calcula el nuevo stock:
//
//	INBOUND  -> current + qty
//	OUTBOUND -> current - qty
//	ADJUST   -> qty
//
// Un resultado negativo devuelve ErrInsufficientStock; una entrada que supera
// MaxUnits es un error de validación.
func ApplyMovement(current int, kind MovementKind, qty int) (int, error) {
	switch {
	case qty < 0:
		return current, domain.Invalid("cantidad", "no puede ser negativa")
	case qty > MaxUnits:
		return current, domain.Invalid("cantidad", "excede el máximo permitido")
	}
	var next int
	switch kind {
	case KindInbound:
		if qty > MaxUnits-current {
			return current, domain.Invalid("cantidad", "el stock resultante excede el máximo permitido")
		}
		next = current + qty
	case KindOutbound:
		next = current - qty
	case KindAdjust:
		next = qty
	default:
		return current, domain.Invalid("tipo_movimiento", "tipo desconocido")
	}
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}
