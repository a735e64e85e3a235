package cascade_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sequencer"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

const (
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testProductID  = "prod-1"
	testCustomerID = "cust-regular"
	testConsumerID = "cust-consumer"
	testSupplierID = "supp-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Harness: tienda mínima en memoria con catálogo, contrapartes y orquestador
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	store    *memory.Store
	orch     *cascade.Orchestrator
	shifts   *shift.UseCase
	treasury *treasury.TreasuryLedger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	seq := sequencer.New(store.Sequences())
	stock := inventory.NewStockLedger(store, store.Movements(), false)
	treasuryLedger := treasury.NewTreasuryLedger(store.Treasury(), nil)
	debtLedger := treasury.NewDebtLedger(store.Debts())
	shiftUC := shift.NewUseCase(store, store.Shifts())
	orch := cascade.NewOrchestrator(
		store, seq, stock, treasuryLedger, debtLedger, shiftUC,
		store.Documents(), store.Customers(), store.Suppliers(),
	)

	require.NoError(t, store.Products().Create(&entity.Product{
		ID:            testProductID,
		SKU:           "SKU-001",
		Name:          "Arroz 1kg",
		Unit:          "unidad",
		PurchasePrice: decimal.NewFromInt(45),
		SellingPrice:  decimal.NewFromInt(65),
		CurrentStock:  decimal.NewFromInt(150),
		IsActive:      true,
	}))
	require.NoError(t, store.Customers().Create(&entity.Customer{
		ID:       testCustomerID,
		Name:     "Tienda La Esquina",
		Type:     entity.CustomerRegular,
		IsActive: true,
	}))
	require.NoError(t, store.Customers().Create(&entity.Customer{
		ID:       testConsumerID,
		Name:     "Consumidor final",
		Type:     entity.CustomerConsumer,
		IsActive: true,
	}))
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{
		ID:       testSupplierID,
		Name:     "Distribuidora Norte",
		IsActive: true,
	}))

	return &testEnv{store: store, orch: orch, shifts: shiftUC, treasury: treasuryLedger}
}

func (e *testEnv) productStock(t *testing.T) decimal.Decimal {
	t.Helper()
	p, err := e.store.Products().GetByID(testProductID)
	require.NoError(t, err)
	return p.CurrentStock
}

func (e *testEnv) treasuryEntries(t *testing.T) []*entity.TreasuryEntry {
	t.Helper()
	entries, err := e.store.Treasury().List(nil, nil, 100, 0)
	require.NoError(t, err)
	return entries
}

func saleRequest(qty int64) dto.PostDocumentRequest {
	return dto.PostDocumentRequest{
		Type:   entity.DocTypeSale,
		Method: entity.PaymentCash,
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(qty)},
		},
	}
}

func futureDate() *time.Time {
	d := time.Now().AddDate(0, 1, 0)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// Venta de contado: la cascada completa en una pasada. Precio omitido toma
// el de catálogo, el stock baja, queda movimiento con before/after y un
// ingreso de tesorería por el total cobrado.
func TestPost_VentaContado(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.orch.Post(context.Background(), testUserID, "", saleRequest(5))
	require.NoError(t, err)

	assert.Equal(t, "INV-"+time.Now().Format("20060102")+"-0001", resp.Number)
	assert.Equal(t, entity.DocStatusCompleted, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(325)), "5 x 65 precio de catálogo")
	assert.True(t, resp.Paid.Equal(decimal.NewFromInt(325)), "pago omitido = pago completo")
	assert.True(t, resp.Remaining.IsZero())
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(65)))

	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(145)))

	movs, err := env.store.Movements().ListByDocument(resp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSale, movs[0].Type)
	assert.True(t, movs[0].QuantityBefore.Equal(decimal.NewFromInt(150)))
	assert.True(t, movs[0].QuantityAfter.Equal(decimal.NewFromInt(145)))

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryIncome, entries[0].Type)
	assert.Equal(t, entity.CategorySales, entries[0].Category)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(325)))
}

// Venta dentro de un turno: el cobro acredita al arqueo por método de pago.
func TestPost_VentaAcreditaAlTurno(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	opened, err := env.shifts.Open(ctx, testUserID, dto.OpenShiftRequest{StartCash: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	_, err = env.orch.Post(ctx, testUserID, opened.ID, saleRequest(5))
	require.NoError(t, err)

	active, err := env.shifts.GetActive(ctx, testUserID)
	require.NoError(t, err)
	assert.True(t, active.TotalSales.Equal(decimal.NewFromInt(325)))
	assert.True(t, active.SalesByMethod[entity.PaymentCash].Equal(decimal.NewFromInt(325)))
}

// Stock insuficiente: la transacción revierte completa, sin documento, sin
// movimiento, sin asiento y sin consumo de stock.
func TestPost_StockInsuficienteReversaTodo(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orch.Post(context.Background(), testUserID, "", saleRequest(200))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(150)), "el stock no debe moverse")
	assert.Empty(t, env.treasuryEntries(t), "ningún asiento de tesorería")

	docs, err := env.store.Documents().List("", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, docs, "ningún documento persistido")

	movs, err := env.store.Movements().ListByProduct(testProductID, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// El consecutivo consumido por una cascada fallida queda como hueco: el
// siguiente documento toma el número siguiente, nunca lo reutiliza.
func TestPost_HuecoEnConsecutivoTrasFallo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.orch.Post(ctx, testUserID, "", saleRequest(200))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	resp, err := env.orch.Post(ctx, testUserID, "", saleRequest(1))
	require.NoError(t, err)
	assert.Equal(t, "INV-"+time.Now().Format("20060102")+"-0002", resp.Number,
		"el 0001 quedó consumido por la cascada fallida")
}

// Venta a crédito: todo el total queda pendiente, nace la deuda, sube el
// saldo del cliente y no hay asiento de tesorería (nada se cobró).
func TestPost_VentaCredito(t *testing.T) {
	env := newTestEnv(t)

	in := saleRequest(5)
	in.Method = entity.PaymentCredit
	in.CustomerID = testCustomerID
	in.DueDate = futureDate()

	resp, err := env.orch.Post(context.Background(), testUserID, "", in)
	require.NoError(t, err)

	assert.True(t, resp.Paid.IsZero())
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(325)))
	assert.Empty(t, env.treasuryEntries(t), "una venta a crédito no mueve tesorería")

	c, err := env.store.Customers().GetByID(testCustomerID)
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(325)))

	debts, err := env.store.Debts().ListByEntity(entity.DebtEntityCustomer, testCustomerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.True(t, debts[0].Remaining.Equal(decimal.NewFromInt(325)))
	assert.Equal(t, resp.ID, debts[0].DocumentID)
}

// El consumidor final no es sujeto de crédito.
func TestPost_CreditoAConsumidorRechazado(t *testing.T) {
	env := newTestEnv(t)

	in := saleRequest(2)
	in.Method = entity.PaymentCredit
	in.CustomerID = testConsumerID
	in.DueDate = futureDate()

	_, err := env.orch.Post(context.Background(), testUserID, "", in)
	assert.ErrorIs(t, err, domain.ErrCreditNotAllowed)
	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(150)), "sin efectos")
}

// Saldo pendiente sin fecha de vencimiento: inválido.
func TestPost_CreditoSinVencimientoRechazado(t *testing.T) {
	env := newTestEnv(t)

	in := saleRequest(2)
	in.Method = entity.PaymentCredit
	in.CustomerID = testCustomerID

	_, err := env.orch.Post(context.Background(), testUserID, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Pago parcial: el cobrado entra a tesorería y el resto nace como deuda.
func TestPost_VentaPagoParcial(t *testing.T) {
	env := newTestEnv(t)

	in := saleRequest(5) // total 325
	in.Paid = decimal.NewFromInt(200)
	in.CustomerID = testCustomerID
	in.DueDate = futureDate()

	resp, err := env.orch.Post(context.Background(), testUserID, "", in)
	require.NoError(t, err)
	assert.True(t, resp.Paid.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(125)))

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(200)), "solo lo cobrado entra a tesorería")

	debts, err := env.store.Debts().ListByEntity(entity.DebtEntityCustomer, testCustomerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.True(t, debts[0].Original.Equal(decimal.NewFromInt(125)))
}

// Un pago explícito por encima del total es inválido.
func TestPost_SobrepagoEnVentaRechazado(t *testing.T) {
	env := newTestEnv(t)

	in := saleRequest(1) // total 65
	in.Paid = decimal.NewFromInt(100)

	_, err := env.orch.Post(context.Background(), testUserID, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Idempotencia: el mismo request_id devuelve el documento original sin
// repetir ningún efecto.
func TestPost_RequestIDIdempotente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := saleRequest(5)
	in.RequestID = "req-abc-123"

	first, err := env.orch.Post(ctx, testUserID, "", in)
	require.NoError(t, err)

	second, err := env.orch.Post(ctx, testUserID, "", in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)
	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(145)),
		"el reintento no debe volver a descontar stock")
	assert.Len(t, env.treasuryEntries(t), 1, "el reintento no debe duplicar el asiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras y devoluciones
// ──────────────────────────────────────────────────────────────────────────────

// Compra de contado: el stock sube, el costo de la línea refresca el precio
// de compra del catálogo y el pago sale como egreso de tesorería.
func TestPost_CompraContado(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:       entity.DocTypePurchase,
		Method:     entity.PaymentTransfer,
		SupplierID: testSupplierID,
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(48)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "PUR-"+time.Now().Format("20060102")+"-0001", resp.Number)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(960)))
	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(170)))

	p, err := env.store.Products().GetByID(testProductID)
	require.NoError(t, err)
	assert.True(t, p.PurchasePrice.Equal(decimal.NewFromInt(48)),
		"el costo de la compra debe propagarse al catálogo")

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryExpense, entries[0].Type)
	assert.Equal(t, entity.CategoryPurchases, entries[0].Category)
}

// Compra a crédito: nace cuenta por pagar al proveedor.
func TestPost_CompraCredito(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:       entity.DocTypePurchase,
		Method:     entity.PaymentCredit,
		SupplierID: testSupplierID,
		DueDate:    futureDate(),
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(45)},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(450)))

	s, err := env.store.Suppliers().GetByID(testSupplierID)
	require.NoError(t, err)
	assert.True(t, s.CurrentBalance.Equal(decimal.NewFromInt(450)))
	assert.Empty(t, env.treasuryEntries(t))
}

func TestPost_CompraSinProveedorRechazada(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:   entity.DocTypePurchase,
		Method: entity.PaymentCash,
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Devolución de venta: el stock regresa y el reembolso sale de tesorería,
// sin tocar el arqueo del turno.
func TestPost_DevolucionDeVenta(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	opened, err := env.shifts.Open(ctx, testUserID, dto.OpenShiftRequest{StartCash: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	resp, err := env.orch.Post(ctx, testUserID, opened.ID, dto.PostDocumentRequest{
		Type:   entity.DocTypeSalesReturn,
		Method: entity.PaymentCash,
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "RET-"+time.Now().Format("20060102")+"-0001", resp.Number)
	assert.True(t, resp.Remaining.IsZero(), "las devoluciones nunca dejan saldo")
	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(152)))

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryExpense, entries[0].Type)
	assert.Equal(t, entity.CategorySalesReturns, entries[0].Category)

	active, err := env.shifts.GetActive(ctx, testUserID)
	require.NoError(t, err)
	assert.True(t, active.TotalSales.IsZero(), "el arqueo solo acumula cobros de venta")
}

// Devolución de compra: el stock sale y el reembolso del proveedor entra.
func TestPost_DevolucionDeCompra(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:       entity.DocTypePurchaseReturn,
		Method:     entity.PaymentTransfer,
		SupplierID: testSupplierID,
		Items: []dto.PostDocumentItemRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	assert.True(t, env.productStock(t).Equal(decimal.NewFromInt(147)))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(45)),
		"precio omitido en devolución de compra toma el precio de compra")

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryIncome, entries[0].Type)
	assert.Equal(t, entity.CategoryPurchaseReturns, entries[0].Category)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos, capital y abonos
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_Gasto(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:     entity.DocTypeExpense,
		Method:   entity.PaymentCash,
		Amount:   decimal.NewFromInt(800),
		Category: "servicios",
	})
	require.NoError(t, err)

	assert.Equal(t, "EXP-"+time.Now().Format("20060102")+"-0001", resp.Number)
	assert.True(t, resp.Remaining.IsZero(), "los gastos se liquidan completos")

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryExpense, entries[0].Type)
	assert.Equal(t, "servicios", entries[0].Category)
}

func TestPost_GastoSinCategoriaRechazado(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:   entity.DocTypeExpense,
		Method: entity.PaymentCash,
		Amount: decimal.NewFromInt(800),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPost_GastoACreditoRechazado(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:     entity.DocTypeExpense,
		Method:   entity.PaymentCredit,
		Amount:   decimal.NewFromInt(800),
		Category: "servicios",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "gastos nunca a crédito")
}

func TestPost_CapitalEntradaYSalida(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.orch.Post(ctx, testUserID, "", dto.PostDocumentRequest{
		Type:      entity.DocTypeCapital,
		Method:    entity.PaymentCash,
		Amount:    decimal.NewFromInt(10000),
		Direction: entity.CapitalIn,
	})
	require.NoError(t, err)

	_, err = env.orch.Post(ctx, testUserID, "", dto.PostDocumentRequest{
		Type:      entity.DocTypeCapital,
		Method:    entity.PaymentCash,
		Amount:    decimal.NewFromInt(2500),
		Direction: entity.CapitalOut,
	})
	require.NoError(t, err)

	b, err := env.treasury.Balance(ctx, "")
	require.NoError(t, err)
	assert.True(t, b.Income.Equal(decimal.NewFromInt(10000)))
	assert.True(t, b.Expense.Equal(decimal.NewFromInt(2500)))
	assert.True(t, b.Net.Equal(decimal.NewFromInt(7500)))
}

func TestPost_CapitalSinDireccionRechazado(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.orch.Post(context.Background(), testUserID, "", dto.PostDocumentRequest{
		Type:   entity.DocTypeCapital,
		Method: entity.PaymentCash,
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Abono a una deuda de cliente: la deuda baja, el saldo del cliente baja y
// el cobro entra a tesorería como recuperación de cartera.
func TestPost_AbonoDeudaCliente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Venta a crédito que origina la deuda (325).
	in := saleRequest(5)
	in.Method = entity.PaymentCredit
	in.CustomerID = testCustomerID
	in.DueDate = futureDate()
	_, err := env.orch.Post(ctx, testUserID, "", in)
	require.NoError(t, err)

	debts, err := env.store.Debts().ListByEntity(entity.DebtEntityCustomer, testCustomerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, debts, 1)

	resp, err := env.orch.Post(ctx, testUserID, "", dto.PostDocumentRequest{
		Type:   entity.DocTypeDebtSettlement,
		Method: entity.PaymentCash,
		Amount: decimal.NewFromInt(125),
		DebtID: debts[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "PAY-"+time.Now().Format("20060102")+"-0001", resp.Number)
	assert.Equal(t, debts[0].ID, resp.DebtID)

	debt, err := env.store.Debts().GetByID(debts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DebtPartial, debt.Status)
	assert.True(t, debt.Remaining.Equal(decimal.NewFromInt(200)))

	c, err := env.store.Customers().GetByID(testCustomerID)
	require.NoError(t, err)
	assert.True(t, c.CurrentBalance.Equal(decimal.NewFromInt(200)))

	entries := env.treasuryEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.TreasuryIncome, entries[0].Type)
	assert.Equal(t, entity.CategoryDebtCollection, entries[0].Category)
}

// Un abono mayor al saldo revierte la cascada completa: ni documento ni
// asiento ni cambio en la deuda.
func TestPost_AbonoSobrepagoReversaTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := saleRequest(5)
	in.Method = entity.PaymentCredit
	in.CustomerID = testCustomerID
	in.DueDate = futureDate()
	_, err := env.orch.Post(ctx, testUserID, "", in)
	require.NoError(t, err)

	debts, err := env.store.Debts().ListByEntity(entity.DebtEntityCustomer, testCustomerID, 10, 0)
	require.NoError(t, err)
	require.Len(t, debts, 1)

	_, err = env.orch.Post(ctx, testUserID, "", dto.PostDocumentRequest{
		Type:   entity.DocTypeDebtSettlement,
		Method: entity.PaymentCash,
		Amount: decimal.NewFromInt(9999),
		DebtID: debts[0].ID,
	})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	debt, err := env.store.Debts().GetByID(debts[0].ID)
	require.NoError(t, err)
	assert.True(t, debt.Paid.IsZero())

	docs, err := env.store.Documents().List(entity.DocTypeDebtSettlement, nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, docs, "el documento de abono no debe persistir")
	assert.Empty(t, env.treasuryEntries(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Forma de la petición y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_FormasInvalidas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.PostDocumentRequest
	}{
		{"tipo desconocido", dto.PostDocumentRequest{Type: "loan", Method: entity.PaymentCash, Amount: decimal.NewFromInt(1)}},
		{"método desconocido", dto.PostDocumentRequest{Type: entity.DocTypeSale, Method: "cheque",
			Items: []dto.PostDocumentItemRequest{{ProductID: testProductID, Quantity: decimal.NewFromInt(1)}}}},
		{"venta sin líneas", dto.PostDocumentRequest{Type: entity.DocTypeSale, Method: entity.PaymentCash}},
		{"cantidad no positiva", dto.PostDocumentRequest{Type: entity.DocTypeSale, Method: entity.PaymentCash,
			Items: []dto.PostDocumentItemRequest{{ProductID: testProductID, Quantity: decimal.Zero}}}},
		{"venta con proveedor", dto.PostDocumentRequest{Type: entity.DocTypeSale, Method: entity.PaymentCash,
			SupplierID: testSupplierID,
			Items:      []dto.PostDocumentItemRequest{{ProductID: testProductID, Quantity: decimal.NewFromInt(1)}}}},
		{"gasto con líneas", dto.PostDocumentRequest{Type: entity.DocTypeExpense, Method: entity.PaymentCash,
			Amount: decimal.NewFromInt(10), Category: "servicios",
			Items:  []dto.PostDocumentItemRequest{{ProductID: testProductID, Quantity: decimal.NewFromInt(1)}}}},
		{"abono sin deuda", dto.PostDocumentRequest{Type: entity.DocTypeDebtSettlement, Method: entity.PaymentCash,
			Amount: decimal.NewFromInt(10)}},
	}
	for _, tc := range cases {
		_, err := env.orch.Post(ctx, testUserID, "", tc.in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.name)
	}
}

func TestPost_ContraparteInactivaRechazada(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.Customers().Create(&entity.Customer{
		ID: "cust-off", Name: "Cerrado", Type: entity.CustomerRegular, IsActive: false,
	}))

	in := saleRequest(1)
	in.CustomerID = "cust-off"
	_, err := env.orch.Post(context.Background(), testUserID, "", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDocument_ConLineas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	posted, err := env.orch.Post(ctx, testUserID, "", saleRequest(3))
	require.NoError(t, err)

	got, err := env.orch.GetDocument(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, posted.Number, got.Number)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Subtotal.Equal(decimal.NewFromInt(195)))

	_, err = env.orch.GetDocument(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocuments_FiltroPorTipo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.orch.Post(ctx, testUserID, "", saleRequest(1))
	require.NoError(t, err)
	_, err = env.orch.Post(ctx, testUserID, "", dto.PostDocumentRequest{
		Type: entity.DocTypeExpense, Method: entity.PaymentCash,
		Amount: decimal.NewFromInt(100), Category: "servicios",
	})
	require.NoError(t, err)

	sales, err := env.orch.ListDocuments(ctx, entity.DocTypeSale, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	all, err := env.orch.ListDocuments(ctx, "", nil, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.orch.ListDocuments(ctx, "loan", nil, nil, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
