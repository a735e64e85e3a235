package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, user_id, start_time, end_time, start_cash, end_cash,
	expected_cash, total_sales, sales_by_method, status`

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL (usable con pool o tx).
// El esquema lleva un índice único parcial sobre (user_id) WHERE status = 'open':
// la BD garantiza a lo sumo un turno abierto por usuario incluso bajo carrera.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persiste un turno nuevo. La violación del índice único parcial
// (otro turno abierto del mismo usuario) se mapea a ErrDuplicate.
func (r *ShiftRepo) Create(shift *entity.Shift) error {
	byMethod, err := marshalSalesByMethod(shift.SalesByMethod)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO cash_shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		shift.ID, shift.UserID, shift.StartTime, shift.EndTime,
		shift.StartCash, shift.EndCash, shift.ExpectedCash,
		shift.TotalSales, byMethod, shift.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID. Retorna (nil, nil) si no existe.
func (r *ShiftRepo) GetByID(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el turno y bloquea la fila (SELECT FOR UPDATE):
// los cobros concurrentes al mismo turno se serializan.
func (r *ShiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetOpenByUser obtiene el turno abierto del usuario, o (nil, nil).
func (r *ShiftRepo) GetOpenByUser(userID string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts WHERE user_id = $1 AND status = 'open'`
	return r.scanOne(query, userID)
}

// GetOpenByUserForUpdate igual que GetOpenByUser pero bloqueando la fila.
func (r *ShiftRepo) GetOpenByUserForUpdate(userID string) (*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts WHERE user_id = $1 AND status = 'open' FOR UPDATE`
	return r.scanOne(query, userID)
}

// Update escribe el estado completo del turno.
func (r *ShiftRepo) Update(shift *entity.Shift) error {
	byMethod, err := marshalSalesByMethod(shift.SalesByMethod)
	if err != nil {
		return err
	}
	query := `
		UPDATE cash_shifts
		SET end_time = $2, end_cash = $3, expected_cash = $4, total_sales = $5,
			sales_by_method = $6, status = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		shift.ID, shift.EndTime, shift.EndCash, shift.ExpectedCash,
		shift.TotalSales, byMethod, shift.Status,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los turnos de un usuario, más recientes primero. userID vacío
// lista los de todos.
func (r *ShiftRepo) List(userID string, limit, offset int) ([]*entity.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_shifts`
	args := []any{}
	pos := 1
	if userID != "" {
		query += fmt.Sprintf(" WHERE user_id = $%d", pos)
		args = append(args, userID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY start_time DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ShiftRepo) scanOne(query string, arg any) (*entity.Shift, error) {
	s, err := scanShift(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

func scanShift(row pgx.Row) (*entity.Shift, error) {
	var s entity.Shift
	var byMethod []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &s.StartCash,
		&s.EndCash, &s.ExpectedCash, &s.TotalSales, &byMethod, &s.Status,
	)
	if err != nil {
		return nil, err
	}
	s.SalesByMethod = map[string]decimal.Decimal{}
	if len(byMethod) > 0 {
		if err := json.Unmarshal(byMethod, &s.SalesByMethod); err != nil {
			return nil, fmt.Errorf("decode sales_by_method: %w", err)
		}
	}
	return &s, nil
}

// marshalSalesByMethod serializa el acumulado por método a JSONB.
func marshalSalesByMethod(m map[string]decimal.Decimal) ([]byte, error) {
	if m == nil {
		m = map[string]decimal.Decimal{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode sales_by_method: %w", err)
	}
	return data, nil
}
