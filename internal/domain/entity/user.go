package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User representa un usuario del sistema (cajero o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | cajero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
