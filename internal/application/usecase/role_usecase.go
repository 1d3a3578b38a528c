package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// RoleUseCase roles, su alcance por categoría/producto y el catálogo de permisos.
type RoleUseCase struct {
	repo     repository.RoleRepository
	activity ports.ActivityRecorder
}

func NewRoleUseCase(repo repository.RoleRepository, activity ports.ActivityRecorder) *RoleUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &RoleUseCase{repo: repo, activity: activity}
}

func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := validateRole(in); err != nil {
		return nil, err
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsAdmin:     in.IsAdmin,
		Permissions: dedupe(in.Permissions),
		CategoryIDs: dedupe(in.CategoryIDs),
		ProductIDs:  dedupe(in.ProductIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	resp := toRoleResponse(role)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Rol " + role.Name + " creado",
		EntityType: "Role", EntityID: role.ID, NewValues: resp, Module: entity.ModuleSecurity,
	})
	return resp, nil
}

func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return toRoleResponse(role), nil
}

// Update reemplaza nombre, permisos y alcance. Los tokens ya emitidos conservan los permisos anteriores hasta expirar.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if err := validateRole(in); err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	old := toRoleResponse(role)
	role.Name = strings.TrimSpace(in.Name)
	role.Description = in.Description
	role.IsAdmin = in.IsAdmin
	role.Permissions = dedupe(in.Permissions)
	role.CategoryIDs = dedupe(in.CategoryIDs)
	role.ProductIDs = dedupe(in.ProductIDs)
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	resp := toRoleResponse(role)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Rol " + role.Name + " actualizado",
		EntityType: "Role", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleSecurity,
	})
	return resp, nil
}

func (uc *RoleUseCase) List(ctx context.Context, q dto.PageRequest) (*dto.RoleListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.RoleListResponse{
		Items: make([]dto.RoleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, r := range list {
		out.Items = append(out.Items, *toRoleResponse(r))
	}
	return out, nil
}

// Delete falla con ErrConflict si hay usuarios con el rol.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Rol eliminado",
		EntityType: "Role", EntityID: id, Module: entity.ModuleSecurity, Severity: entity.SeverityWarning,
	})
	return nil
}

// Permissions catálogo de permisos asignables.
func (uc *RoleUseCase) Permissions() []dto.PermissionResponse {
	out := make([]dto.PermissionResponse, 0, len(entity.PermissionCatalog))
	for _, p := range entity.PermissionCatalog {
		out = append(out, dto.PermissionResponse{Code: p.Code, Description: p.Description, Module: p.Module})
	}
	return out
}

func validateRole(in dto.RoleRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	for _, p := range in.Permissions {
		if !entity.IsKnownPermission(p) {
			return fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, p)
		}
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsAdmin:     r.IsAdmin,
		Permissions: r.Permissions,
		CategoryIDs: r.CategoryIDs,
		ProductIDs:  r.ProductIDs,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
