package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial (conjunto cerrado).
const (
	DocTypeSale           = "sale"            // venta
	DocTypePurchase       = "purchase"        // compra
	DocTypeSalesReturn    = "sales_return"    // devolución de venta
	DocTypePurchaseReturn = "purchase_return" // devolución de compra
	DocTypeExpense        = "expense"         // gasto
	DocTypeCapital        = "capital"         // movimiento de capital
	DocTypeDebtSettlement = "debt_settlement" // abono a deuda
)

// Métodos de pago.
const (
	PaymentCash     = "cash"     // efectivo (cuenta para el arqueo de caja)
	PaymentWallet   = "wallet"   // billetera electrónica
	PaymentTransfer = "transfer" // transferencia inmediata
	PaymentCredit   = "credit"   // crédito diferido
)

// Estados del documento.
const (
	DocStatusPending   = "pending"
	DocStatusCompleted = "completed"
	DocStatusCancelled = "cancelled"
)

// Direcciones de un movimiento de capital.
const (
	CapitalIn  = "in"  // aporte de capital
	CapitalOut = "out" // retiro personal
)

// Document representa un documento comercial contabilizado: la cabecera de la
// cascada (venta, compra, devolución, gasto, capital o abono a deuda).
// Number es el consecutivo asignado por el secuenciador; inmutable una vez
// contabilizado.
type Document struct {
	ID          string
	Number      string // p.ej. INV-20250101-0007
	Type        string
	RequestID   string // clave de idempotencia del caller (opcional)
	Date        time.Time
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal // = Subtotal - Discount + Tax
	Paid        decimal.Decimal
	Remaining   decimal.Decimal // = Total - Paid
	Method      string          // método de pago
	CustomerID  string          // XOR SupplierID (opcional)
	SupplierID  string
	DebtID      string // solo para abonos a deuda
	Direction   string // solo para movimientos de capital
	Category    string // categoría de tesorería (gastos)
	DueDate     *time.Time
	Status      string
	Description string
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// DocumentItem es una línea del documento (solo ventas/compras/devoluciones).
type DocumentItem struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   decimal.Decimal // puede ser fraccionaria (unidades no enteras)
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal // Quantity * UnitPrice
}

// HasItems indica si el tipo de documento lleva líneas de producto.
func HasItems(docType string) bool {
	switch docType {
	case DocTypeSale, DocTypePurchase, DocTypeSalesReturn, DocTypePurchaseReturn:
		return true
	}
	return false
}

// ValidDocType valida el tipo contra el conjunto cerrado.
func ValidDocType(docType string) bool {
	switch docType {
	case DocTypeSale, DocTypePurchase, DocTypeSalesReturn, DocTypePurchaseReturn,
		DocTypeExpense, DocTypeCapital, DocTypeDebtSettlement:
		return true
	}
	return false
}

// ValidPaymentMethod valida el método de pago.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentWallet, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}
