package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func seedProduct(t *testing.T, store *memory.Store, stock string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:            "prod-1",
		SKU:           "SKU-001",
		Name:          "Arroz 1kg",
		Unit:          "unidad",
		PurchasePrice: decimal.RequireFromString("45"),
		SellingPrice:  decimal.RequireFromString("65"),
		CurrentStock:  decimal.RequireFromString(stock),
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, store.Products().Create(p))
	return p
}

// Ajuste positivo: sube el stock y deja el movimiento con before/after.
func TestAdjust_Entrada(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, store.Movements(), false)
	seedProduct(t, store, "10")

	resp, err := ledger.Adjust(context.Background(), testUserID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Quantity:  decimal.RequireFromString("5"),
		Notes:     "conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, resp.QuantityBefore.Equal(decimal.RequireFromString("10")))
	assert.True(t, resp.QuantityAfter.Equal(decimal.RequireFromString("15")))

	p, err := store.Products().GetByID("prod-1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.RequireFromString("15")),
		"el stock del catálogo debe reflejar el ajuste")

	movs, err := store.Movements().ListByProduct("prod-1", nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAdjustment, movs[0].Type)
}

// Ajuste negativo que dejaría stock bajo cero: rechazado con la política
// por defecto, sin efectos.
func TestAdjust_StockInsuficiente(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, store.Movements(), false)
	seedProduct(t, store, "3")

	_, err := ledger.Adjust(context.Background(), testUserID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Quantity:  decimal.RequireFromString("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := store.Products().GetByID("prod-1")
	assert.True(t, p.CurrentStock.Equal(decimal.RequireFromString("3")),
		"un ajuste rechazado no debe tocar el stock")

	movs, _ := store.Movements().ListByProduct("prod-1", nil, nil, 10, 0)
	assert.Empty(t, movs, "un ajuste rechazado no debe dejar movimiento")
}

// Con la política de stock negativo habilitada el mismo ajuste pasa.
func TestAdjust_StockNegativoPermitido(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, store.Movements(), true)
	seedProduct(t, store, "3")

	resp, err := ledger.Adjust(context.Background(), testUserID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Quantity:  decimal.RequireFromString("-5"),
	})
	require.NoError(t, err)
	assert.True(t, resp.QuantityAfter.Equal(decimal.RequireFromString("-2")))
}

// Cantidades fraccionarias: el libro no redondea.
func TestAdjust_CantidadFraccionaria(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, store.Movements(), false)
	seedProduct(t, store, "2.5")

	resp, err := ledger.Adjust(context.Background(), testUserID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Quantity:  decimal.RequireFromString("0.75"),
	})
	require.NoError(t, err)
	assert.True(t, resp.QuantityAfter.Equal(decimal.RequireFromString("3.25")))
}

func TestAdjust_EntradasInvalidas(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewStockLedger(store, store.Movements(), false)
	seedProduct(t, store, "10")
	ctx := context.Background()

	_, err := ledger.Adjust(ctx, testUserID, dto.AdjustStockRequest{ProductID: "", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto vacío")

	_, err = ledger.Adjust(ctx, testUserID, dto.AdjustStockRequest{ProductID: "prod-1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = ledger.Adjust(ctx, testUserID, dto.AdjustStockRequest{ProductID: "no-existe", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}
