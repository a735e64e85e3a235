package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostDocumentItemRequest línea de un documento a contabilizar.
// UnitPrice en cero toma el precio de catálogo (venta o compra según el tipo).
type PostDocumentItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PostDocumentRequest petición para contabilizar un documento.
// Según el tipo: ventas/compras/devoluciones llevan Items; gastos y capital
// llevan Amount; los abonos llevan DebtID y Amount. DueDate es obligatorio
// cuando queda saldo pendiente.
type PostDocumentRequest struct {
	Type        string                    `json:"type"`
	RequestID   string                    `json:"request_id"` // clave de idempotencia (opcional)
	Items       []PostDocumentItemRequest `json:"items"`
	Method      string                    `json:"payment_method"`
	Paid        decimal.Decimal           `json:"paid_amount"`
	Amount      decimal.Decimal           `json:"amount"` // gastos, capital y abonos
	Discount    decimal.Decimal           `json:"discount"`
	Tax         decimal.Decimal           `json:"tax"`
	CustomerID  string                    `json:"customer_id"`
	SupplierID  string                    `json:"supplier_id"`
	DebtID      string                    `json:"debt_id"`
	Direction   string                    `json:"direction"` // capital: in | out
	Category    string                    `json:"category"`  // gastos
	DueDate     *time.Time                `json:"due_date"`
	Description string                    `json:"description"`
}

// DocumentItemResponse línea de un documento contabilizado.
type DocumentItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// DocumentResponse documento contabilizado con sus totales y líneas.
type DocumentResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	Type        string                 `json:"type"`
	Date        string                 `json:"date"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Discount    decimal.Decimal        `json:"discount"`
	Tax         decimal.Decimal        `json:"tax"`
	Total       decimal.Decimal        `json:"total"`
	Paid        decimal.Decimal        `json:"paid"`
	Remaining   decimal.Decimal        `json:"remaining"`
	Method      string                 `json:"payment_method"`
	CustomerID  string                 `json:"customer_id,omitempty"`
	SupplierID  string                 `json:"supplier_id,omitempty"`
	DebtID      string                 `json:"debt_id,omitempty"`
	Status      string                 `json:"status"`
	Description string                 `json:"description,omitempty"`
	Items       []DocumentItemResponse `json:"items,omitempty"`
}

// AdjustStockRequest petición de ajuste manual de inventario.
// Quantity con signo: positivo entrada, negativo salida.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes"`
}

// MovementResponse movimiento de inventario.
type MovementResponse struct {
	ID             string          `json:"id"`
	DocumentID     string          `json:"document_id"`
	ProductID      string          `json:"product_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Date           string          `json:"date"`
}
