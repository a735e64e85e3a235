package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

const debtColumns = `id, entity_type, entity_id, document_id, original_amount,
	paid_amount, remaining_amount, due_date, status, created_at, updated_at`

// DebtRepo implementación de DebtRepository sobre PostgreSQL (usable con pool o tx).
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

// Create persiste una deuda nueva.
func (r *DebtRepo) Create(debt *entity.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		debt.ID, debt.EntityType, debt.EntityID, debt.DocumentID,
		debt.Original, debt.Paid, debt.Remaining, debt.DueDate, debt.Status,
		debt.CreatedAt, debt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

// GetByID obtiene una deuda por ID. Retorna (nil, nil) si no existe.
func (r *DebtRepo) GetByID(id string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la deuda y bloquea la fila (SELECT FOR UPDATE): dos
// abonos concurrentes a la misma deuda se serializan.
func (r *DebtRepo) GetForUpdate(id string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update escribe los acumulados y el estado de la deuda.
func (r *DebtRepo) Update(debt *entity.Debt) error {
	query := `
		UPDATE debts
		SET paid_amount = $2, remaining_amount = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		debt.ID, debt.Paid, debt.Remaining, debt.Status, debt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return nil
}

// CreatePayment persiste un abono.
func (r *DebtRepo) CreatePayment(payment *entity.DebtPayment) error {
	query := `
		INSERT INTO debt_payments (id, debt_id, document_id, amount, method, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.DebtID, payment.DocumentID, payment.Amount,
		payment.Method, payment.Date, payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create debt payment: %w", err)
	}
	return nil
}

// ListByEntity lista las deudas de una contraparte, pendientes primero.
func (r *DebtRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Debt, error) {
	query := `
		SELECT ` + debtColumns + ` FROM debts
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY (status = 'paid'), created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListPayments lista los abonos de una deuda en orden cronológico.
func (r *DebtRepo) ListPayments(debtID string) ([]*entity.DebtPayment, error) {
	query := `
		SELECT id, debt_id, document_id, amount, method, date, created_by
		FROM debt_payments WHERE debt_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, debtID)
	if err != nil {
		return nil, fmt.Errorf("list debt payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.DebtPayment
	for rows.Next() {
		var p entity.DebtPayment
		if err := rows.Scan(&p.ID, &p.DebtID, &p.DocumentID, &p.Amount, &p.Method, &p.Date, &p.CreatedBy); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *DebtRepo) scanOne(query string, arg any) (*entity.Debt, error) {
	d, err := scanDebt(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func scanDebt(row pgx.Row) (*entity.Debt, error) {
	var d entity.Debt
	err := row.Scan(
		&d.ID, &d.EntityType, &d.EntityID, &d.DocumentID,
		&d.Original, &d.Paid, &d.Remaining, &d.DueDate, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
