package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente. Solo los clientes "regular" pueden cargar saldo a crédito;
// "consumer" es el cliente de mostrador (solo contado).
const (
	CustomerRegular  = "regular"
	CustomerConsumer = "consumer"
)

// Customer representa un cliente. CurrentBalance es el saldo deudor
// acumulado; solo lo mutan las cascadas de documentos.
type Customer struct {
	ID             string
	Code           string
	Name           string
	Type           string // regular | consumer
	Phone          string
	Email          string
	Address        string
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreditEligible indica si el cliente puede quedar con saldo pendiente.
func (c *Customer) CreditEligible() bool {
	return c.Type == CustomerRegular
}
