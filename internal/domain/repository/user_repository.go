package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*entity.User, int, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository persistencia de roles con permisos y alcance.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	List(ctx context.Context, limit, offset int) ([]*entity.Role, int, error)
	Delete(ctx context.Context, id string) error
}
