package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un turno de caja.
const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"
)

// Shift representa un turno de caja (ventana apertura-cierre de un cajero).
// SalesByMethod acumula el cobrado por método de pago; al cierre se congela
// junto con el efectivo esperado y el contado. Un turno cerrado es terminal.
type Shift struct {
	ID            string
	UserID        string
	StartTime     time.Time
	EndTime       *time.Time // nil mientras está abierto
	StartCash     decimal.Decimal
	EndCash       *decimal.Decimal // efectivo contado al cierre
	ExpectedCash  *decimal.Decimal // StartCash + total del canal efectivo
	TotalSales    decimal.Decimal
	SalesByMethod map[string]decimal.Decimal
	Status        string
}

// CashTotal devuelve lo acumulado por el canal efectivo (el único canal
// equivalente a caja; billetera y transferencia son electrónicos).
func (s *Shift) CashTotal() decimal.Decimal {
	if s.SalesByMethod == nil {
		return decimal.Zero
	}
	return s.SalesByMethod[PaymentCash]
}

// Discrepancy devuelve contado - esperado al cierre (cero si sigue abierto).
// Es una señal de reporte, no un error: no bloquea el cierre.
func (s *Shift) Discrepancy() decimal.Decimal {
	if s.EndCash == nil || s.ExpectedCash == nil {
		return decimal.Zero
	}
	return s.EndCash.Sub(*s.ExpectedCash)
}
