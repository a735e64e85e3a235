package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entidades deudoras.
const (
	DebtEntityCustomer = "customer" // cuenta por cobrar
	DebtEntitySupplier = "supplier" // cuenta por pagar
)

// Estados de una deuda.
const (
	DebtPending = "pending"
	DebtPartial = "partial"
	DebtPaid    = "paid"
)

// Debt es una cuenta por cobrar (cliente) o por pagar (proveedor).
// Invariante: Paid + Remaining = Original en todo momento. Paid solo lo
// mutan documentos de abono (DebtSettlement).
type Debt struct {
	ID         string
	EntityType string // customer | supplier
	EntityID   string
	DocumentID string // documento que originó la deuda
	Original   decimal.Decimal
	Paid       decimal.Decimal
	Remaining  decimal.Decimal
	DueDate    *time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DebtPayment es el registro inmutable de un abono aplicado a una deuda.
type DebtPayment struct {
	ID         string
	DebtID     string
	DocumentID string // documento DebtSettlement que aplicó el abono
	Amount     decimal.Decimal
	Method     string
	Date       time.Time
	CreatedBy  string
}
