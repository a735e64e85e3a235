package sequencer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Prefijos por tipo de documento.
const (
	PrefixSale           = "INV"
	PrefixPurchase       = "PUR"
	PrefixSalesReturn    = "RET"
	PrefixPurchaseReturn = "PRT"
	PrefixExpense        = "EXP"
	PrefixCapital        = "CAP"
	PrefixDebtSettlement = "PAY"
)

// maxPerDay límite del contador de 4 dígitos. Superarlo es un límite
// operativo detectable (hay que ampliar el formato), no un wrap silencioso.
const maxPerDay = 9999

// Sequencer asigna consecutivos de documento por (prefijo, día calendario):
// INV-20250101-0007. La asignación se serializa por clave en el repositorio
// (fila bloqueada por el UPDATE); prefijos o días distintos no contienden.
//
// El consumo es definitivo: un consecutivo tomado por una cascada que luego
// falla queda como hueco. Nunca se reutiliza, así la duplicación es imposible.
type Sequencer struct {
	seqRepo repository.SequenceRepository
}

// New construye el secuenciador.
func New(seqRepo repository.SequenceRepository) *Sequencer {
	return &Sequencer{seqRepo: seqRepo}
}

// Next reserva y devuelve el menor consecutivo libre para (prefix, date),
// formateado como {prefix}-{YYYYMMDD}-{seq:04d}.
// Retorna domain.ErrSequenceExhausted si el contador del día supera 9999.
func (s *Sequencer) Next(ctx context.Context, prefix string, date time.Time) (string, error) {
	if prefix == "" {
		return "", domain.ErrInvalidInput
	}
	n, err := s.seqRepo.Next(prefix, date)
	if err != nil {
		return "", fmt.Errorf("siguiente consecutivo %s: %w", prefix, err)
	}
	if n > maxPerDay {
		return "", domain.ErrSequenceExhausted
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), n), nil
}

// PrefixFor devuelve el prefijo del consecutivo según el tipo de documento.
func PrefixFor(docType string) string {
	switch docType {
	case entity.DocTypeSale:
		return PrefixSale
	case entity.DocTypePurchase:
		return PrefixPurchase
	case entity.DocTypeSalesReturn:
		return PrefixSalesReturn
	case entity.DocTypePurchaseReturn:
		return PrefixPurchaseReturn
	case entity.DocTypeExpense:
		return PrefixExpense
	case entity.DocTypeCapital:
		return PrefixCapital
	case entity.DocTypeDebtSettlement:
		return PrefixDebtSettlement
	}
	return ""
}
