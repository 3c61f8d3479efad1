package entity

import "github.com/shopspring/decimal"

// StockStatus estado de disponibilidad de un ítem tal como lo espera Deliverect.
type StockStatus string

const (
	StockStatusIn  StockStatus = "IN_STOCK"
	StockStatusOut StockStatus = "OUT_OF_STOCK"
)

// Valid indica si el valor pertenece al dominio del enum.
func (s StockStatus) Valid() bool {
	return s == StockStatusIn || s == StockStatusOut
}

// DefaultStockQuantity stock inicial cuando la fuente no trae la columna Stock Quantity.
const DefaultStockQuantity = 10

// Product una fila del catálogo de inventario.
// ID es el identificador interno estable, asignado una sola vez en la carga
// y desacoplado del orden de presentación o de cualquier filtro.
// PLU es el código externo del producto: inmutable después de la carga.
type Product struct {
	ID            int64
	Name          string
	Category      string
	PLU           string
	BasePrice     decimal.Decimal
	StockQuantity int
	StockStatus   StockStatus
}
