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

// SubCategoryUseCase CRUD de subcategorías; cada una pertenece a una categoría.
type SubCategoryUseCase struct {
	repo       repository.SubCategoryRepository
	categories repository.CategoryRepository
	activity   ports.ActivityRecorder
}

func NewSubCategoryUseCase(repo repository.SubCategoryRepository, categories repository.CategoryRepository, activity ports.ActivityRecorder) *SubCategoryUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &SubCategoryUseCase{repo: repo, categories: categories, activity: activity}
}

func (uc *SubCategoryUseCase) Create(ctx context.Context, in dto.SubCategoryRequest) (*dto.SubCategoryResponse, error) {
	code := normalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sub := &entity.SubCategory{
		ID:          uuid.New().String(),
		CategoryID:  category.ID,
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	resp := toSubCategoryResponse(sub, category.Name)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Subcategoría " + sub.Code + " creada",
		EntityType: "SubCategory", EntityID: sub.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *SubCategoryUseCase) GetByID(ctx context.Context, id string) (*dto.SubCategoryResponse, error) {
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return toSubCategoryResponse(sub, uc.categoryName(ctx, sub.CategoryID)), nil
}

// Update permite mover la subcategoría a otra categoría existente.
func (uc *SubCategoryUseCase) Update(ctx context.Context, id string, in dto.SubCategoryRequest) (*dto.SubCategoryResponse, error) {
	sub, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	old := toSubCategoryResponse(sub, "")
	if in.CategoryID != "" && in.CategoryID != sub.CategoryID {
		if _, err := uc.category(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		sub.CategoryID = in.CategoryID
	}
	if code := normalizeCode(in.Code); code != "" {
		sub.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		sub.Name = name
	}
	sub.Description = in.Description
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}
	sub.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	resp := toSubCategoryResponse(sub, uc.categoryName(ctx, sub.CategoryID))
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Subcategoría " + sub.Code + " actualizada",
		EntityType: "SubCategory", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *SubCategoryUseCase) List(ctx context.Context, q dto.SubCategoryListQuery) (*dto.SubCategoryListResponse, error) {
	q.DefaultPage()
	f := repository.SubCategoryFilter{
		ListFilter: repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive},
		CategoryID: q.CategoryID,
	}
	list, total, err := uc.repo.List(ctx, f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	items := make([]dto.SubCategoryResponse, 0, len(list))
	for _, sub := range list {
		name, ok := names[sub.CategoryID]
		if !ok {
			name = uc.categoryName(ctx, sub.CategoryID)
			names[sub.CategoryID] = name
		}
		items = append(items, *toSubCategoryResponse(sub, name))
	}
	return &dto.SubCategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete falla con ErrConflict si la subcategoría tiene productos.
func (uc *SubCategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Subcategoría eliminada",
		EntityType: "SubCategory", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func (uc *SubCategoryUseCase) category(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *SubCategoryUseCase) categoryName(ctx context.Context, id string) string {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil || c == nil {
		return ""
	}
	return c.Name
}

func toSubCategoryResponse(sub *entity.SubCategory, categoryName string) *dto.SubCategoryResponse {
	return &dto.SubCategoryResponse{
		ID:           sub.ID,
		CategoryID:   sub.CategoryID,
		CategoryName: categoryName,
		Code:         sub.Code,
		Name:         sub.Name,
		Description:  sub.Description,
		IsActive:     sub.IsActive,
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}
}
