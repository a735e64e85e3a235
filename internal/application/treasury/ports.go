package treasury

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// BalanceCache cachea el agregado de tesorería por canal. La cascada lo
// invalida en cada contabilización; la ausencia de caché (Noop) es válida.
type BalanceCache interface {
	Get(ctx context.Context, method string) (*entity.TreasuryBalance, bool, error)
	Set(ctx context.Context, method string, balance *entity.TreasuryBalance, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopBalanceCache desactiva el caché (sin Redis configurado).
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(_ context.Context, _ string) (*entity.TreasuryBalance, bool, error) {
	return nil, false, nil
}

func (NoopBalanceCache) Set(_ context.Context, _ string, _ *entity.TreasuryBalance, _ time.Duration) error {
	return nil
}

func (NoopBalanceCache) Invalidate(_ context.Context) error { return nil }
