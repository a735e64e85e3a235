package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor. CurrentBalance es el saldo por pagar
// acumulado; solo lo mutan las cascadas de documentos.
type Supplier struct {
	ID             string
	Code           string
	Name           string
	Phone          string
	Email          string
	Address        string
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
