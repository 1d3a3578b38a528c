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

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	activity ports.ActivityRecorder
}

func NewCategoryUseCase(repo repository.CategoryRepository, activity ports.ActivityRecorder) *CategoryUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &CategoryUseCase{repo: repo, activity: activity}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	code := normalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Categoría " + c.Code + " creada",
		EntityType: "Category", EntityID: c.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	old := toCategoryResponse(c)
	if code := normalizeCode(in.Code); code != "" {
		c.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.Description = in.Description
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Categoría " + c.Code + " actualizada",
		EntityType: "Category", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *CategoryUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.CategoryListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete falla con ErrConflict si la categoría tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Categoría eliminada",
		EntityType: "Category", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
