package dto

import "github.com/shopspring/decimal"

// OpenShiftRequest apertura de turno con el fondo fijo inicial.
type OpenShiftRequest struct {
	StartCash decimal.Decimal `json:"start_cash"`
}

// CloseShiftRequest cierre de turno con el efectivo contado.
type CloseShiftRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
}

// ShiftResponse estado de un turno de caja.
type ShiftResponse struct {
	ID            string                     `json:"id"`
	UserID        string                     `json:"user_id"`
	StartTime     string                     `json:"start_time"`
	EndTime       string                     `json:"end_time,omitempty"`
	StartCash     decimal.Decimal            `json:"start_cash"`
	EndCash       *decimal.Decimal           `json:"end_cash,omitempty"`
	ExpectedCash  *decimal.Decimal           `json:"expected_cash,omitempty"`
	Discrepancy   *decimal.Decimal           `json:"discrepancy,omitempty"`
	TotalSales    decimal.Decimal            `json:"total_sales"`
	SalesByMethod map[string]decimal.Decimal `json:"sales_by_method"`
	Status        string                     `json:"status"`
}
