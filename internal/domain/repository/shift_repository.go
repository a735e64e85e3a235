package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ShiftRepository define el puerto de persistencia para turnos de caja.
// A lo sumo un turno abierto por usuario (índice único parcial en la
// implementación PostgreSQL).
type ShiftRepository interface {
	Create(shift *entity.Shift) error
	GetByID(id string) (*entity.Shift, error)
	GetForUpdate(id string) (*entity.Shift, error)
	GetOpenByUser(userID string) (*entity.Shift, error)
	GetOpenByUserForUpdate(userID string) (*entity.Shift, error)
	Update(shift *entity.Shift) error
	List(userID string, limit, offset int) ([]*entity.Shift, error)
}
