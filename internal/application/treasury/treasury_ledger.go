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

// balanceTTL vigencia del agregado cacheado; la cascada lo invalida antes.
const balanceTTL = 5 * time.Minute

// TreasuryLedger es el libro de caja/tesorería: asientos inmutables por canal
// de pago más la consulta agregada de saldo. Un asiento nunca se muta ni se
// borra; las correcciones se contabilizan como asientos inversos.
type TreasuryLedger struct {
	treasuryRepo repository.TreasuryRepository
	cache        BalanceCache
}

// NewTreasuryLedger construye el libro de tesorería. cache puede ser
// NoopBalanceCache.
func NewTreasuryLedger(treasuryRepo repository.TreasuryRepository, cache BalanceCache) *TreasuryLedger {
	if cache == nil {
		cache = NoopBalanceCache{}
	}
	return &TreasuryLedger{treasuryRepo: treasuryRepo, cache: cache}
}

// RecordInTx apendiza un asiento usando el repositorio del caller (misma
// transacción de la cascada).
func (l *TreasuryLedger) RecordInTx(
	treasuryRepo repository.TreasuryRepository,
	entryType, category, documentID string,
	amount decimal.Decimal,
	method, userID, description string,
	now time.Time,
) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	return treasuryRepo.Create(&entity.TreasuryEntry{
		ID:          uuid.New().String(),
		Type:        entryType,
		Category:    category,
		DocumentID:  documentID,
		Amount:      amount,
		Method:      method,
		Date:        now,
		CreatedBy:   userID,
		Description: description,
	})
}

// RecordOpeningBalance registra el saldo inicial de tesorería (asiento
// opening_balance, fuera de la cascada).
func (l *TreasuryLedger) RecordOpeningBalance(ctx context.Context, userID string, in dto.OpeningBalanceRequest) error {
	if !in.Amount.IsPositive() || !entity.ValidPaymentMethod(in.Method) {
		return domain.ErrInvalidInput
	}
	if err := l.RecordInTx(
		l.treasuryRepo,
		entity.TreasuryOpeningBalance, entity.CategoryOpening, "",
		in.Amount, in.Method, userID, in.Description, time.Now(),
	); err != nil {
		return err
	}
	_ = l.cache.Invalidate(ctx) // mejor esfuerzo
	return nil
}

// Balance devuelve {ingresos, egresos, neto}, opcionalmente filtrado por
// canal (method vacío = todos). income y opening_balance suman; expense resta.
func (l *TreasuryLedger) Balance(ctx context.Context, method string) (*dto.TreasuryBalanceResponse, error) {
	if method != "" && !entity.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidInput
	}
	if cached, ok, err := l.cache.Get(ctx, method); err == nil && ok {
		return &dto.TreasuryBalanceResponse{Method: method, Income: cached.Income, Expense: cached.Expense, Net: cached.Net}, nil
	}
	balance, err := l.treasuryRepo.Balance(method)
	if err != nil {
		return nil, err
	}
	_ = l.cache.Set(ctx, method, balance, balanceTTL)
	return &dto.TreasuryBalanceResponse{Method: method, Income: balance.Income, Expense: balance.Expense, Net: balance.Net}, nil
}

// InvalidateBalance descarta el agregado cacheado (tras cada cascada).
func (l *TreasuryLedger) InvalidateBalance(ctx context.Context) {
	_ = l.cache.Invalidate(ctx)
}

// ListEntries lista asientos en un rango de fechas (lectura).
func (l *TreasuryLedger) ListEntries(ctx context.Context, from, to *time.Time, limit, offset int) ([]*dto.TreasuryEntryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := l.treasuryRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TreasuryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.TreasuryEntryResponse{
			ID:          e.ID,
			Type:        e.Type,
			Category:    e.Category,
			DocumentID:  e.DocumentID,
			Amount:      e.Amount,
			Method:      e.Method,
			Date:        e.Date.Format(time.RFC3339),
			Description: e.Description,
		})
	}
	return out, nil
}
