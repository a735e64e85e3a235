package shift

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

// UseCase maneja el ciclo de vida del turno de caja: abrir, acumular cobros
// por método de pago y cerrar con arqueo. Máquina de estados de dos estados
// (open, closed); closed es terminal.
type UseCase struct {
	txRunner  TxRunner
	shiftRepo repository.ShiftRepository
}

// NewUseCase construye el caso de uso de turnos.
func NewUseCase(txRunner TxRunner, shiftRepo repository.ShiftRepository) *UseCase {
	return &UseCase{txRunner: txRunner, shiftRepo: shiftRepo}
}

// Open abre un turno para el usuario con el fondo fijo inicial.
// Retorna domain.ErrShiftAlreadyOpen si ya tiene uno abierto (la verificación
// corre en transacción; el índice único parcial de la BD cubre la carrera).
func (uc *UseCase) Open(ctx context.Context, userID string, in dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	if userID == "" || in.StartCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.Shift
	err := uc.txRunner.RunShift(ctx, func(shiftRepo repository.ShiftRepository) error {
		open, err := shiftRepo.GetOpenByUser(userID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrShiftAlreadyOpen
		}
		created = &entity.Shift{
			ID:            uuid.New().String(),
			UserID:        userID,
			StartTime:     time.Now(),
			StartCash:     in.StartCash,
			TotalSales:    decimal.Zero,
			SalesByMethod: map[string]decimal.Decimal{},
			Status:        entity.ShiftOpen,
		}
		return shiftRepo.Create(created)
	})
	if err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrShiftAlreadyOpen
		}
		return nil, err
	}
	return toResponse(created), nil
}

// ApplyProceedsInTx acredita un cobro de venta al turno, con el repositorio
// del caller (misma transacción de la cascada). Solo turnos abiertos.
func (uc *UseCase) ApplyProceedsInTx(
	shiftRepo repository.ShiftRepository,
	shiftID, method string,
	amount decimal.Decimal,
) error {
	if !amount.IsPositive() || !entity.ValidPaymentMethod(method) {
		return domain.ErrInvalidInput
	}
	s, err := shiftRepo.GetForUpdate(shiftID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if s.Status != entity.ShiftOpen {
		return domain.ErrShiftClosed
	}
	if s.SalesByMethod == nil {
		s.SalesByMethod = map[string]decimal.Decimal{}
	}
	s.SalesByMethod[method] = s.SalesByMethod[method].Add(amount)
	s.TotalSales = s.TotalSales.Add(amount)
	return shiftRepo.Update(s)
}

// Close cierra el turno abierto del usuario: congela los acumulados, calcula
// el efectivo esperado (fondo inicial + canal efectivo) y registra el
// contado. La discrepancia se reporta, nunca bloquea el cierre.
// Retorna domain.ErrShiftClosed si el usuario no tiene turno abierto.
func (uc *UseCase) Close(ctx context.Context, userID string, in dto.CloseShiftRequest) (*dto.ShiftResponse, error) {
	if userID == "" || in.CountedCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var closed *entity.Shift
	err := uc.txRunner.RunShift(ctx, func(shiftRepo repository.ShiftRepository) error {
		s, err := shiftRepo.GetOpenByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrShiftClosed
		}
		now := time.Now()
		expected := s.StartCash.Add(s.CashTotal())
		counted := in.CountedCash
		s.EndTime = &now
		s.ExpectedCash = &expected
		s.EndCash = &counted
		s.Status = entity.ShiftClosed
		if err := shiftRepo.Update(s); err != nil {
			return err
		}
		closed = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(closed), nil
}

// GetActive devuelve el turno abierto del usuario, o nil si no hay.
func (uc *UseCase) GetActive(ctx context.Context, userID string) (*dto.ShiftResponse, error) {
	s, err := uc.shiftRepo.GetOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toResponse(s), nil
}

func toResponse(s *entity.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		StartTime:     s.StartTime.Format(time.RFC3339),
		StartCash:     s.StartCash,
		EndCash:       s.EndCash,
		ExpectedCash:  s.ExpectedCash,
		TotalSales:    s.TotalSales,
		SalesByMethod: s.SalesByMethod,
		Status:        s.Status,
	}
	if s.EndTime != nil {
		resp.EndTime = s.EndTime.Format(time.RFC3339)
	}
	if s.EndCash != nil && s.ExpectedCash != nil {
		d := s.Discrepancy()
		resp.Discrepancy = &d
	}
	return resp
}
