package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.TreasuryRepository = (*TreasuryRepo)(nil)

const treasuryColumns = `id, type, category, document_id, amount, method, date, created_by, description`

// TreasuryRepo implementación de TreasuryRepository sobre PostgreSQL (usable con pool o tx).
// Los asientos son inmutables: solo INSERT y agregación.
type TreasuryRepo struct {
	q Querier
}

// NewTreasuryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTreasuryRepository(q Querier) *TreasuryRepo {
	return &TreasuryRepo{q: q}
}

// Create apendiza un asiento de tesorería.
func (r *TreasuryRepo) Create(entry *entity.TreasuryEntry) error {
	query := `
		INSERT INTO treasury_entries (` + treasuryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Type, entry.Category, nullable(entry.DocumentID),
		entry.Amount, entry.Method, entry.Date, entry.CreatedBy, entry.Description,
	)
	if err != nil {
		return fmt.Errorf("create treasury entry: %w", err)
	}
	return nil
}

// Balance agrega los asientos: income y opening_balance suman, expense resta.
// method vacío agrega todos los canales.
func (r *TreasuryRepo) Balance(method string) (*entity.TreasuryBalance, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type IN ('income', 'opening_balance') THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense
		FROM treasury_entries`
	args := []any{}
	if method != "" {
		query += ` WHERE method = $1`
		args = append(args, method)
	}

	var b entity.TreasuryBalance
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&b.Income, &b.Expense); err != nil {
		return nil, fmt.Errorf("treasury balance: %w", err)
	}
	b.Net = b.Income.Sub(b.Expense)
	return &b, nil
}

// List lista asientos en un rango de fechas, más recientes primero.
func (r *TreasuryRepo) List(from, to *time.Time, limit, offset int) ([]*entity.TreasuryEntry, error) {
	query := `SELECT ` + treasuryColumns + ` FROM treasury_entries WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list treasury entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.TreasuryEntry
	for rows.Next() {
		var e entity.TreasuryEntry
		var documentID *string
		if err := rows.Scan(
			&e.ID, &e.Type, &e.Category, &documentID, &e.Amount,
			&e.Method, &e.Date, &e.CreatedBy, &e.Description,
		); err != nil {
			return nil, err
		}
		e.DocumentID = deref(documentID)
		out = append(out, &e)
	}
	return out, rows.Err()
}
