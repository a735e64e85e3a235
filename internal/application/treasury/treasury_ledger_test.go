package treasury_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// El saldo agrega income y opening_balance como ingreso y expense como
// egreso; neto = ingresos - egresos.
func TestBalance_Agregacion(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewTreasuryLedger(store.Treasury(), nil)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, ledger.RecordOpeningBalance(ctx, testUserID, dto.OpeningBalanceRequest{
		Method: entity.PaymentCash, Amount: decimal.NewFromInt(10000),
	}))
	require.NoError(t, ledger.RecordInTx(store.Treasury(), entity.TreasuryIncome, entity.CategorySales,
		"doc-1", decimal.NewFromInt(3000), entity.PaymentCash, testUserID, "", now))
	require.NoError(t, ledger.RecordInTx(store.Treasury(), entity.TreasuryIncome, entity.CategorySales,
		"doc-2", decimal.NewFromInt(1500), entity.PaymentWallet, testUserID, "", now))
	require.NoError(t, ledger.RecordInTx(store.Treasury(), entity.TreasuryExpense, entity.CategoryPurchases,
		"doc-3", decimal.NewFromInt(2000), entity.PaymentCash, testUserID, "", now))

	b, err := ledger.Balance(ctx, "")
	require.NoError(t, err)
	assert.True(t, b.Income.Equal(decimal.NewFromInt(14500)))
	assert.True(t, b.Expense.Equal(decimal.NewFromInt(2000)))
	assert.True(t, b.Net.Equal(decimal.NewFromInt(12500)))
}

// El filtro por canal solo considera los asientos de ese método de pago.
func TestBalance_FiltroPorCanal(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewTreasuryLedger(store.Treasury(), nil)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, ledger.RecordInTx(store.Treasury(), entity.TreasuryIncome, entity.CategorySales,
		"doc-1", decimal.NewFromInt(3000), entity.PaymentCash, testUserID, "", now))
	require.NoError(t, ledger.RecordInTx(store.Treasury(), entity.TreasuryIncome, entity.CategorySales,
		"doc-2", decimal.NewFromInt(1500), entity.PaymentWallet, testUserID, "", now))

	b, err := ledger.Balance(ctx, entity.PaymentWallet)
	require.NoError(t, err)
	assert.True(t, b.Income.Equal(decimal.NewFromInt(1500)))
	assert.True(t, b.Net.Equal(decimal.NewFromInt(1500)))
}

func TestBalance_CanalInvalido(t *testing.T) {
	ledger := treasury.NewTreasuryLedger(memory.NewStore().Treasury(), nil)
	_, err := ledger.Balance(context.Background(), "cheque")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordOpeningBalance_Validacion(t *testing.T) {
	ledger := treasury.NewTreasuryLedger(memory.NewStore().Treasury(), nil)
	ctx := context.Background()

	err := ledger.RecordOpeningBalance(ctx, testUserID, dto.OpeningBalanceRequest{
		Method: entity.PaymentCash, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero rechazado")

	err = ledger.RecordOpeningBalance(ctx, testUserID, dto.OpeningBalanceRequest{
		Method: "cheque", Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método desconocido rechazado")
}

func TestRecordInTx_MontoNoPositivo(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewTreasuryLedger(store.Treasury(), nil)
	err := ledger.RecordInTx(store.Treasury(), entity.TreasuryIncome, entity.CategorySales,
		"doc-1", decimal.NewFromInt(-5), entity.PaymentCash, testUserID, "", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
