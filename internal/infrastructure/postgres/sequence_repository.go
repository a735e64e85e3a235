package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación de SequenceRepository sobre PostgreSQL.
// El upsert atómico serializa la asignación por clave: la fila de
// (prefix, seq_date) queda bloqueada durante el UPDATE, así dos llamadas
// concurrentes nunca reciben el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next reserva y devuelve el siguiente valor para (prefix, fecha calendario).
func (r *SequenceRepo) Next(prefix string, date time.Time) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, seq_date, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, seq_date)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int
	err := r.q.QueryRow(context.Background(), query, prefix, date.Format("2006-01-02")).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", prefix, err)
	}
	return n, nil
}
