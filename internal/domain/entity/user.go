package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// AdminUsername usuario reservado que siempre se trata como administrador.
const AdminUsername = "admin"

// AdminRoleID rol administrador creado por las migraciones.
const AdminRoleID = "00000000-0000-0000-0000-000000000001"

// User usuario del sistema. Los permisos provienen de su Role.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	RoleID       string
	Status       string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }
