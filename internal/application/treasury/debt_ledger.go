package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// DebtLedger administra cuentas por cobrar (clientes) y por pagar
// (proveedores). Invariante: paid + remaining = original tras cada abono.
// Los abonos entran por la cascada como documentos DebtSettlement, nunca
// directo: así el efectivo recibido queda también en tesorería.
type DebtLedger struct {
	debtRepo repository.DebtRepository
}

// NewDebtLedger construye el libro de deudas.
func NewDebtLedger(debtRepo repository.DebtRepository) *DebtLedger {
	return &DebtLedger{debtRepo: debtRepo}
}

// OpenDebtInTx crea una deuda pendiente y sube el saldo corriente de la
// contraparte, con los repositorios del caller (misma transacción).
func (l *DebtLedger) OpenDebtInTx(
	debtRepo repository.DebtRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	entityType, entityID, documentID string,
	amount decimal.Decimal,
	dueDate *time.Time,
	now time.Time,
) (*entity.Debt, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	debt := &entity.Debt{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		DocumentID: documentID,
		Original:   amount,
		Paid:       decimal.Zero,
		Remaining:  amount,
		DueDate:    dueDate,
		Status:     entity.DebtPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := debtRepo.Create(debt); err != nil {
		return nil, err
	}
	switch entityType {
	case entity.DebtEntityCustomer:
		if err := customerRepo.AdjustBalance(entityID, amount); err != nil {
			return nil, err
		}
	case entity.DebtEntitySupplier:
		if err := supplierRepo.AdjustBalance(entityID, amount); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	return debt, nil
}

// SettleInTx aplica un abono a una deuda con la fila bloqueada: sube paid,
// baja remaining, baja el saldo de la contraparte y registra el pago.
// Retorna domain.ErrOverpayment si el abono excede el saldo pendiente.
func (l *DebtLedger) SettleInTx(
	debtRepo repository.DebtRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	debtID, documentID string,
	amount decimal.Decimal,
	method, userID string,
	now time.Time,
) (*entity.Debt, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	debt, err := debtRepo.GetForUpdate(debtID)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, domain.ErrNotFound
	}
	if debt.Status == entity.DebtPaid {
		return nil, domain.ErrConflict
	}
	if amount.GreaterThan(debt.Remaining) {
		return nil, domain.ErrOverpayment
	}

	debt.Paid = debt.Paid.Add(amount)
	debt.Remaining = debt.Remaining.Sub(amount)
	debt.UpdatedAt = now
	if debt.Remaining.IsZero() {
		debt.Status = entity.DebtPaid
	} else {
		debt.Status = entity.DebtPartial
	}
	if err := debtRepo.Update(debt); err != nil {
		return nil, err
	}
	if err := debtRepo.CreatePayment(&entity.DebtPayment{
		ID:         uuid.New().String(),
		DebtID:     debt.ID,
		DocumentID: documentID,
		Amount:     amount,
		Method:     method,
		Date:       now,
		CreatedBy:  userID,
	}); err != nil {
		return nil, err
	}
	switch debt.EntityType {
	case entity.DebtEntityCustomer:
		if err := customerRepo.AdjustBalance(debt.EntityID, amount.Neg()); err != nil {
			return nil, err
		}
	case entity.DebtEntitySupplier:
		if err := supplierRepo.AdjustBalance(debt.EntityID, amount.Neg()); err != nil {
			return nil, err
		}
	}
	return debt, nil
}

// GetDebt obtiene una deuda por ID (lectura).
func (l *DebtLedger) GetDebt(ctx context.Context, id string) (*dto.DebtResponse, error) {
	debt, err := l.debtRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, domain.ErrNotFound
	}
	return toDebtResponse(debt), nil
}

// ListDebts lista las deudas de una contraparte (lectura).
func (l *DebtLedger) ListDebts(ctx context.Context, entityType, entityID string, limit, offset int) ([]*dto.DebtResponse, error) {
	if entityType != entity.DebtEntityCustomer && entityType != entity.DebtEntitySupplier {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	debts, err := l.debtRepo.ListByEntity(entityType, entityID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DebtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, toDebtResponse(d))
	}
	return out, nil
}

func toDebtResponse(d *entity.Debt) *dto.DebtResponse {
	resp := &dto.DebtResponse{
		ID:         d.ID,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		DocumentID: d.DocumentID,
		Original:   d.Original,
		Paid:       d.Paid,
		Remaining:  d.Remaining,
		Status:     d.Status,
	}
	if d.DueDate != nil {
		resp.DueDate = d.DueDate.Format("2006-01-02")
	}
	return resp
}
