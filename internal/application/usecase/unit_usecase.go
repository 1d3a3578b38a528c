package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// UnitUseCase CRUD de unidades de medida.
type UnitUseCase struct {
	repo     repository.UnitRepository
	activity ports.ActivityRecorder
}

func NewUnitUseCase(repo repository.UnitRepository, activity ports.ActivityRecorder) *UnitUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &UnitUseCase{repo: repo, activity: activity}
}

func (uc *UnitUseCase) Create(ctx context.Context, in dto.UnitRequest) (*dto.UnitResponse, error) {
	code := normalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	u := &entity.Unit{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := toUnitResponse(u)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Unidad " + u.Code + " creada",
		EntityType: "Unit", EntityID: u.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *UnitUseCase) GetByID(ctx context.Context, id string) (*dto.UnitResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitResponse(u), nil
}

// Update no propaga el código nuevo a los productos; se copia al asignar la unidad.
func (uc *UnitUseCase) Update(ctx context.Context, id string, in dto.UnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	old := toUnitResponse(u)
	if code := normalizeCode(in.Code); code != "" {
		u.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	u.Description = in.Description
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := toUnitResponse(u)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Unidad " + u.Code + " actualizada",
		EntityType: "Unit", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *UnitUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.UnitListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete falla con ErrConflict si algún producto usa la unidad.
func (uc *UnitUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Unidad eliminada",
		EntityType: "Unit", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:          u.ID,
		Code:        u.Code,
		Name:        u.Name,
		Description: u.Description,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
