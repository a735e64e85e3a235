package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// DebtRepository define el puerto de persistencia para deudas y sus abonos.
// GetForUpdate bloquea la fila de la deuda para que el abono sea atómico.
type DebtRepository interface {
	Create(debt *entity.Debt) error
	GetByID(id string) (*entity.Debt, error)
	GetForUpdate(id string) (*entity.Debt, error)
	Update(debt *entity.Debt) error
	CreatePayment(payment *entity.DebtPayment) error
	ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Debt, error)
	ListPayments(debtID string) ([]*entity.DebtPayment, error)
}
