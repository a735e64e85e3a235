package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementSale       = "sale"       // salida por venta
	MovementPurchase   = "purchase"   // entrada por compra
	MovementReturnIn   = "return_in"  // entrada por devolución de venta
	MovementReturnOut  = "return_out" // salida por devolución de compra
	MovementAdjustment = "adjustment" // ajuste manual
)

// InventoryMovement es un registro inmutable de cambio de stock: delta con
// signo más la cantidad antes y después. Se crea exactamente una vez por
// línea aplicada; nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID             string
	DocumentID     string // documento de referencia
	ProductID      string
	Type           string
	Quantity       decimal.Decimal // positivo entrada, negativo salida
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Date           time.Time
	CreatedBy      string
	Notes          string
}

// MovementTypeFor infiere el tipo de movimiento desde el tipo de documento.
func MovementTypeFor(docType string) string {
	switch docType {
	case DocTypeSale:
		return MovementSale
	case DocTypePurchase:
		return MovementPurchase
	case DocTypeSalesReturn:
		return MovementReturnIn
	case DocTypePurchaseReturn:
		return MovementReturnOut
	}
	return MovementAdjustment
}

// StockDirection devuelve el signo del movimiento de stock por tipo de
// documento: compras y devoluciones de venta suman; ventas y devoluciones de
// compra restan.
func StockDirection(docType string) int {
	switch docType {
	case DocTypePurchase, DocTypeSalesReturn:
		return 1
	case DocTypeSale, DocTypePurchaseReturn:
		return -1
	}
	return 0
}
