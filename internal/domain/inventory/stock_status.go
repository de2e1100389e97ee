package inventory

// StockStatus clasificación de un producto según sus umbrales.
type StockStatus string

const (
	StatusOutOfStock  StockStatus = "OUT_OF_STOCK"
	StatusLowStock    StockStatus = "LOW_STOCK"
	StatusExcessStock StockStatus = "EXCESS_STOCK"
	StatusNormal      StockStatus = "NORMAL"
)

// Classify evalúa en orden: sin stock, stock bajo, exceso (solo si hay máximo), normal.
// El primer caso que cumple gana.
func Classify(stock, minStock int, maxStock *int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= minStock:
		return StatusLowStock
	case maxStock != nil && stock >= *maxStock:
		return StatusExcessStock
	default:
		return StatusNormal
	}
}

// Severity severidad de la alerta asociada; vacío para NORMAL.
func (s StockStatus) Severity() string {
	switch s {
	case StatusOutOfStock:
		return "CRITICA"
	case StatusLowStock:
		return "ALTA"
	case StatusExcessStock:
		return "MEDIA"
	}
	return ""
}

// IsAlert indica si el estado genera alerta.
func (s StockStatus) IsAlert() bool {
	return s != StatusNormal
}
