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

// StoreUseCase casos de uso CRUD para tiendas y bodegas.
type StoreUseCase struct {
	repo     repository.StoreRepository
	activity ports.ActivityRecorder
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, activity ports.ActivityRecorder) *StoreUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &StoreUseCase{repo: repo, activity: activity}
}

// Create crea una nueva tienda.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.StoreRequest) (*dto.StoreResponse, error) {
	code := normalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:              uuid.New().String(),
		Code:            code,
		Name:            strings.TrimSpace(in.Name),
		Address:         in.Address,
		Phone:           in.Phone,
		IsMainWarehouse: in.IsMainWarehouse,
		IsActive:        in.IsActive == nil || *in.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	resp := toStoreResponse(store)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Tienda " + store.Code + " creada",
		EntityType: "Store", EntityID: store.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Update reemplaza los datos de la tienda.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.StoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	old := toStoreResponse(store)
	if code := normalizeCode(in.Code); code != "" {
		store.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		store.Name = name
	}
	store.Address = in.Address
	store.Phone = in.Phone
	store.IsMainWarehouse = in.IsMainWarehouse
	if in.IsActive != nil {
		store.IsActive = *in.IsActive
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	resp := toStoreResponse(store)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Tienda " + store.Code + " actualizada",
		EntityType: "Store", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

// List lista tiendas con paginación.
func (uc *StoreUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.StoreListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete elimina una tienda sin existencias ni documentos (ErrConflict en otro caso).
func (uc *StoreUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Tienda eliminada",
		EntityType: "Store", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		Address:         s.Address,
		Phone:           s.Phone,
		IsMainWarehouse: s.IsMainWarehouse,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
