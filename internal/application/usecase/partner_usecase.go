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

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	activity ports.ActivityRecorder
}

func NewCustomerUseCase(repo repository.CustomerRepository, activity ports.ActivityRecorder) *CustomerUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &CustomerUseCase{repo: repo, activity: activity}
}

func (uc *CustomerUseCase) Create(ctx context.Context, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerResponse(c)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Cliente " + c.Name + " creado",
		EntityType: "Customer", EntityID: c.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return customerResponse(c), nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	old := customerResponse(c)
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.TaxID = strings.TrimSpace(in.TaxID)
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerResponse(c)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Cliente " + c.Name + " actualizado",
		EntityType: "Customer", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *CustomerUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.PartnerListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PartnerListResponse{
		Items: make([]dto.PartnerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, c := range list {
		out.Items = append(out.Items, *customerResponse(c))
	}
	return out, nil
}

// Delete falla con ErrConflict si el cliente tiene órdenes.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Cliente eliminado",
		EntityType: "Customer", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	activity ports.ActivityRecorder
}

func NewSupplierUseCase(repo repository.SupplierRepository, activity ports.ActivityRecorder) *SupplierUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &SupplierUseCase{repo: repo, activity: activity}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		ContactName: in.ContactName,
		TaxID:       strings.TrimSpace(in.TaxID),
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	resp := supplierResponse(s)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionCreate, Description: "Proveedor " + s.Name + " creado",
		EntityType: "Supplier", EntityID: s.ID, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return supplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.PartnerRequest) (*dto.PartnerResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	old := supplierResponse(s)
	if name := strings.TrimSpace(in.Name); name != "" {
		s.Name = name
	}
	s.ContactName = in.ContactName
	s.TaxID = strings.TrimSpace(in.TaxID)
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := supplierResponse(s)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionUpdate, Description: "Proveedor " + s.Name + " actualizado",
		EntityType: "Supplier", EntityID: id, OldValues: old, NewValues: resp, Module: entity.ModuleCatalog,
	})
	return resp, nil
}

func (uc *SupplierUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.PartnerListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ListFilter{Search: q.Search, OnlyActive: q.OnlyActive}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PartnerListResponse{
		Items: make([]dto.PartnerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, s := range list {
		out.Items = append(out.Items, *supplierResponse(s))
	}
	return out, nil
}

// Delete falla con ErrConflict si el proveedor tiene órdenes.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action: entity.ActionDelete, Description: "Proveedor eliminado",
		EntityType: "Supplier", EntityID: id, Module: entity.ModuleCatalog, Severity: entity.SeverityWarning,
	})
	return nil
}

func customerResponse(c *entity.Customer) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone,
		Address: c.Address, IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func supplierResponse(s *entity.Supplier) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID: s.ID, Name: s.Name, ContactName: s.ContactName, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone,
		Address: s.Address, IsActive: s.IsActive, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}
