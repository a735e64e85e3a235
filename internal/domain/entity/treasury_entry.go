package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento de tesorería.
const (
	TreasuryIncome         = "income"
	TreasuryExpense        = "expense"
	TreasuryOpeningBalance = "opening_balance"
)

// Categorías de tesorería producidas por la cascada.
const (
	CategorySales           = "sales"
	CategoryPurchases       = "purchases"
	CategorySalesReturns    = "sales_returns"
	CategoryPurchaseReturns = "purchase_returns"
	CategoryCapital         = "capital"
	CategoryDebtCollection  = "debt_collection"
	CategoryDebtPayment     = "debt_payment"
	CategoryOpening         = "opening"
)

// TreasuryEntry es un asiento inmutable de caja/tesorería por canal de pago.
// Nunca se muta ni se elimina; las correcciones se contabilizan como asientos
// inversos nuevos.
type TreasuryEntry struct {
	ID          string
	Type        string // income | expense | opening_balance
	Category    string
	DocumentID  string // documento de referencia (opcional)
	Amount      decimal.Decimal
	Method      string // método de pago
	Date        time.Time
	CreatedBy   string
	Description string
}

// TreasuryBalance es el agregado de tesorería: ingresos (income +
// opening_balance) menos egresos.
type TreasuryBalance struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}
