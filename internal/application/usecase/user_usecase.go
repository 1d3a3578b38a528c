package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	roles    repository.RoleRepository
	activity ports.ActivityRecorder
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository, activity ports.ActivityRecorder) *UserUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &UserUseCase{repo: repo, roles: roles, activity: activity}
}

// Create hashea el password con bcrypt y persiste. Username y email son únicos.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.repo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := uc.checkRole(ctx, in.RoleID); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		RoleID:       in.RoleID,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Usuario " + user.Username + " creado",
		EntityType: "User", EntityID: user.ID, NewValues: resp, Module: entity.ModuleSecurity,
	})
	return resp, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// Update aplica los campos presentes. El usuario admin no se puede desactivar.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	old := ToUserResponse(user)
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.RoleID != nil {
		if err := uc.checkRole(ctx, *in.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = *in.RoleID
	}
	if in.Status != nil {
		if user.Username == entity.AdminUsername && *in.Status != entity.UserStatusActive {
			return nil, fmt.Errorf("%w: el usuario admin no se puede desactivar", domain.ErrForbidden)
		}
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Usuario " + user.Username + " actualizado",
		EntityType: "User", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleSecurity,
	})
	return resp, nil
}

// List lista usuarios con búsqueda y paginación.
func (uc *UserUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.UserListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, u := range list {
		out.Items = append(out.Items, *ToUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario. No se puede eliminar al admin ni a uno mismo.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if actor, ok := ports.ActorFrom(ctx); ok && actor.UserID == id {
		return fmt.Errorf("%w: no puede eliminarse a sí mismo", domain.ErrForbidden)
	}
	if user.Username == entity.AdminUsername {
		return fmt.Errorf("%w: el usuario admin no se puede eliminar", domain.ErrForbidden)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Usuario " + user.Username + " eliminado",
		EntityType: "User", EntityID: id, Module: entity.ModuleSecurity, Severity: entity.SeverityWarning,
	})
	return nil
}

func (uc *UserUseCase) checkRole(ctx context.Context, roleID string) error {
	role, err := uc.roles.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("%w: rol %s", domain.ErrNotFound, roleID)
	}
	return nil
}

// ToUserResponse mapea un usuario al DTO sin el hash de password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		RoleID:      u.RoleID,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
