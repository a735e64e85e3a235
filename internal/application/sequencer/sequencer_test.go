package sequencer_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/sequencer"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

var testDate = time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)

// Formato del consecutivo: {prefijo}-{YYYYMMDD}-{seq:04d}, empezando en 0001.
func TestNext_FormatoYArranque(t *testing.T) {
	seq := sequencer.New(memory.NewStore().Sequences())

	n1, err := seq.Next(context.Background(), sequencer.PrefixSale, testDate)
	require.NoError(t, err)
	assert.Equal(t, "INV-20250607-0001", n1)

	n2, err := seq.Next(context.Background(), sequencer.PrefixSale, testDate)
	require.NoError(t, err)
	assert.Equal(t, "INV-20250607-0002", n2, "el consecutivo debe ser estrictamente creciente")
}

// Prefijos distintos y días distintos llevan contadores independientes.
func TestNext_ContadoresIndependientes(t *testing.T) {
	seq := sequencer.New(memory.NewStore().Sequences())
	ctx := context.Background()

	n1, err := seq.Next(ctx, sequencer.PrefixSale, testDate)
	require.NoError(t, err)
	n2, err := seq.Next(ctx, sequencer.PrefixPurchase, testDate)
	require.NoError(t, err)
	n3, err := seq.Next(ctx, sequencer.PrefixSale, testDate.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, "INV-20250607-0001", n1)
	assert.Equal(t, "PUR-20250607-0001", n2, "otro prefijo arranca su propio contador")
	assert.Equal(t, "INV-20250608-0001", n3, "otro día arranca su propio contador")
}

func TestNext_PrefijoVacioRechazado(t *testing.T) {
	seq := sequencer.New(memory.NewStore().Sequences())
	_, err := seq.Next(context.Background(), "", testDate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Agotado el contador de 4 dígitos el error debe ser explícito, nunca un
// wrap silencioso a 0000.
func TestNext_ContadorAgotado(t *testing.T) {
	seq := sequencer.New(memory.NewStore().Sequences())
	ctx := context.Background()

	for i := 1; i <= 9999; i++ {
		_, err := seq.Next(ctx, sequencer.PrefixExpense, testDate)
		require.NoError(t, err)
	}
	_, err := seq.Next(ctx, sequencer.PrefixExpense, testDate)
	assert.ErrorIs(t, err, domain.ErrSequenceExhausted)
}

// N goroutines concurrentes nunca reciben el mismo consecutivo.
func TestNext_ConcurrenciaSinDuplicados(t *testing.T) {
	seq := sequencer.New(memory.NewStore().Sequences())
	ctx := context.Background()

	const workers = 50
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx, sequencer.PrefixSale, testDate)
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for n := range results {
		assert.False(t, seen[n], fmt.Sprintf("consecutivo duplicado: %s", n))
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func TestPrefixFor_TiposConocidos(t *testing.T) {
	assert.Equal(t, sequencer.PrefixSale, sequencer.PrefixFor(entity.DocTypeSale))
	assert.Equal(t, sequencer.PrefixPurchase, sequencer.PrefixFor(entity.DocTypePurchase))
	assert.Equal(t, sequencer.PrefixSalesReturn, sequencer.PrefixFor(entity.DocTypeSalesReturn))
	assert.Equal(t, sequencer.PrefixPurchaseReturn, sequencer.PrefixFor(entity.DocTypePurchaseReturn))
	assert.Equal(t, sequencer.PrefixExpense, sequencer.PrefixFor(entity.DocTypeExpense))
	assert.Equal(t, sequencer.PrefixCapital, sequencer.PrefixFor(entity.DocTypeCapital))
	assert.Equal(t, sequencer.PrefixDebtSettlement, sequencer.PrefixFor(entity.DocTypeDebtSettlement))
	assert.Equal(t, "", sequencer.PrefixFor("algo-desconocido"))
}
