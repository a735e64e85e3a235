package treasury_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func seedCustomer(t *testing.T, store *memory.Store) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		ID:             "cust-1",
		Name:           "Tienda La Esquina",
		Type:           entity.CustomerRegular,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, store.Customers().Create(c))
	return c
}

func openTestDebt(t *testing.T, store *memory.Store, ledger *treasury.DebtLedger, amount int64) *entity.Debt {
	t.Helper()
	seedCustomer(t, store)
	debt, err := ledger.OpenDebtInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		entity.DebtEntityCustomer, "cust-1", "doc-venta-1",
		decimal.NewFromInt(amount), nil, time.Now(),
	)
	require.NoError(t, err)
	return debt
}

// Abrir deuda: queda pendiente por el total y sube el saldo del cliente.
func TestOpenDebt_SaldoDeCliente(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())

	debt := openTestDebt(t, store, ledger, 1500)

	assert.Equal(t, entity.DebtPending, debt.Status)
	assert.True(t, debt.Remaining.Equal(decimal.NewFromInt(1500)))
	assert.True(t, debt.Paid.IsZero())

	c, err := store.Customers().GetByID("cust-1")
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(1500)),
		"el saldo corriente del cliente debe subir por el monto de la deuda")
}

// Abono parcial: paid + remaining = original en todo momento, estado partial
// y saldo del cliente rebajado.
func TestSettle_AbonoParcial(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())
	debt := openTestDebt(t, store, ledger, 1500)

	settled, err := ledger.SettleInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		debt.ID, "doc-abono-1", decimal.NewFromInt(600), entity.PaymentCash, testUserID, time.Now(),
	)
	require.NoError(t, err)

	assert.Equal(t, entity.DebtPartial, settled.Status)
	assert.True(t, settled.Paid.Equal(decimal.NewFromInt(600)))
	assert.True(t, settled.Remaining.Equal(decimal.NewFromInt(900)))
	assert.True(t, settled.Paid.Add(settled.Remaining).Equal(settled.Original),
		"paid + remaining debe igualar el monto original")

	c, _ := store.Customers().GetByID("cust-1")
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(900)))

	payments, err := store.Debts().ListPayments(debt.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(600)))
}

// Abono por el saldo completo: la deuda queda saldada y rechaza más abonos.
func TestSettle_SaldadaCompleta(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())
	debt := openTestDebt(t, store, ledger, 1000)

	settled, err := ledger.SettleInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		debt.ID, "doc-abono-1", decimal.NewFromInt(1000), entity.PaymentCash, testUserID, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, entity.DebtPaid, settled.Status)
	assert.True(t, settled.Remaining.IsZero())

	_, err = ledger.SettleInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		debt.ID, "doc-abono-2", decimal.NewFromInt(1), entity.PaymentCash, testUserID, time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrConflict, "una deuda saldada no admite más abonos")
}

// Un abono mayor al saldo pendiente se rechaza sin efectos.
func TestSettle_SobrepagoRechazado(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())
	debt := openTestDebt(t, store, ledger, 500)

	_, err := ledger.SettleInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		debt.ID, "doc-abono-1", decimal.NewFromInt(800), entity.PaymentCash, testUserID, time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	after, err := ledger.GetDebt(context.Background(), debt.ID)
	require.NoError(t, err)
	assert.True(t, after.Paid.IsZero(), "un sobrepago rechazado no debe aplicar nada")
	assert.Equal(t, entity.DebtPending, after.Status)
}

func TestSettle_DeudaInexistente(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())

	_, err := ledger.SettleInTx(
		store.Debts(), store.Customers(), store.Suppliers(),
		"no-existe", "doc-1", decimal.NewFromInt(100), entity.PaymentCash, testUserID, time.Now(),
	)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDebts_FiltroPorContraparte(t *testing.T) {
	store := memory.NewStore()
	ledger := treasury.NewDebtLedger(store.Debts())
	openTestDebt(t, store, ledger, 1500)

	debts, err := ledger.ListDebts(context.Background(), entity.DebtEntityCustomer, "cust-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, debts, 1)

	debts, err = ledger.ListDebts(context.Background(), entity.DebtEntityCustomer, "otro", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, debts)
}
