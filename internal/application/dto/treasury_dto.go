package dto

import "github.com/shopspring/decimal"

// TreasuryBalanceResponse agregado de tesorería, opcionalmente por canal.
type TreasuryBalanceResponse struct {
	Method  string          `json:"method,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// TreasuryEntryResponse asiento de tesorería.
type TreasuryEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	DocumentID  string          `json:"document_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"payment_method"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}

// OpeningBalanceRequest registra el saldo inicial de tesorería.
type OpeningBalanceRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"payment_method"`
	Description string          `json:"description"`
}

// DebtResponse estado de una deuda.
type DebtResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	DocumentID string          `json:"document_id"`
	Original   decimal.Decimal `json:"original_amount"`
	Paid       decimal.Decimal `json:"paid_amount"`
	Remaining  decimal.Decimal `json:"remaining_amount"`
	DueDate    string          `json:"due_date,omitempty"`
	Status     string          `json:"status"`
}
