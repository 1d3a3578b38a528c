package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var upper = cases.Upper(language.Und)

// normalizeCode códigos únicos sin espacios y en mayúsculas.
func normalizeCode(code string) string {
	return upper.String(strings.TrimSpace(code))
}

// ProductUseCase casos de uso CRUD para productos. Cost solo cambia con compras y saldos iniciales.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	subs       repository.SubCategoryRepository
	units      repository.UnitRepository
	activity   ports.ActivityRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	subs repository.SubCategoryRepository,
	units repository.UnitRepository,
	activity ports.ActivityRecorder,
) *ProductUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &ProductUseCase{repo: repo, categories: categories, subs: subs, units: units, activity: activity}
}

// Create crea un nuevo producto. Cost inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := normalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	categoryID, err := uc.checkSubCategory(ctx, in.CategoryID, in.SubCategoryID)
	if err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if in.UnitID != "" {
		if unit, err = uc.unitCode(ctx, in.UnitID); err != nil {
			return nil, err
		}
	}
	if unit == "" {
		unit = "UND"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		CategoryID:    categoryID,
		SubCategoryID: in.SubCategoryID,
		UnitID:        in.UnitID,
		Unit:          unit,
		Cost:          decimal.Zero,
		Price:         in.Price,
		ReorderLevel:  in.ReorderLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Producto " + product.Code + " creado",
		EntityType: "Product", EntityID: product.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

// GetByID obtiene un producto por ID. Fuera del alcance del actor se reporta como inexistente.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !visible(ctx, product) {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Code ni Cost.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !visible(ctx, product) {
		return nil, domain.ErrNotFound
	}
	old := toProductResponse(product)
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		if *in.CategoryID != product.CategoryID {
			// la subcategoría anterior pertenece a otra categoría
			product.SubCategoryID = ""
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SubCategoryID != nil {
		categoryID, err := uc.checkSubCategory(ctx, product.CategoryID, *in.SubCategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
		product.SubCategoryID = *in.SubCategoryID
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
		if product.UnitID != "" {
			if product.Unit, err = uc.unitCode(ctx, product.UnitID); err != nil {
				return nil, err
			}
		}
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.ReorderLevel != nil {
		if in.ReorderLevel.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Producto " + product.Code + " actualizado",
		EntityType: "Product", EntityID: product.ID, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

// List lista productos con búsqueda, filtro de categoría y alcance del actor.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	f := repository.ProductFilter{
		Search: q.Search, CategoryID: q.CategoryID, SubCategoryID: q.SubCategoryID, OnlyActive: q.OnlyActive,
	}
	if actor, ok := ports.ActorFrom(ctx); ok && actor.Scoped() {
		f.CategoryIDs = actor.CategoryIDs
		f.ProductIDs = actor.ProductIDs
	}
	list, total, err := uc.repo.List(ctx, f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete elimina un producto sin existencias ni movimientos (ErrConflict en otro caso).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Producto " + product.Code + " eliminado",
		EntityType: "Product", EntityID: id, OldValues: toProductResponse(product),
		Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

// checkSubCategory valida que la subcategoría exista y pertenezca a categoryID. Sin
// categoría devuelve la de la subcategoría.
func (uc *ProductUseCase) checkSubCategory(ctx context.Context, categoryID, subID string) (string, error) {
	if subID == "" {
		return categoryID, nil
	}
	sub, err := uc.subs.GetByID(ctx, subID)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return "", domain.ErrNotFound
	}
	if categoryID != "" && sub.CategoryID != categoryID {
		return "", domain.ErrInvalidInput
	}
	return sub.CategoryID, nil
}

func (uc *ProductUseCase) unitCode(ctx context.Context, unitID string) (string, error) {
	u, err := uc.units.GetByID(ctx, unitID)
	if err != nil {
		return "", err
	}
	if u == nil || !u.IsActive {
		return "", domain.ErrNotFound
	}
	return u.Code, nil
}

func visible(ctx context.Context, p *entity.Product) bool {
	actor, ok := ports.ActorFrom(ctx)
	return !ok || actor.CanSeeProduct(p.ID, p.CategoryID)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		UnitID:        p.UnitID,
		Unit:          p.Unit,
		Cost:          p.Cost,
		Price:         p.Price,
		ReorderLevel:  p.ReorderLevel,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
