package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

func newProductUseCase(db *memory.DB) *ProductUseCase {
	return NewProductUseCase(
		memory.NewProductRepository(db), memory.NewCategoryRepository(db),
		memory.NewSubCategoryRepository(db), memory.NewUnitRepository(db), nil,
	)
}

func TestProductCreate_CodigoNormalizadoYUnico(t *testing.T) {
	db := memory.NewDB()
	uc := newProductUseCase(db)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: " abc-1 ", Name: "Tuerca", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, "ABC-1", p.Code)
	assert.Equal(t, "UND", p.Unit)
	assert.True(t, p.Cost.IsZero())

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "ABC-1", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	db := memory.NewDB()
	uc := newProductUseCase(db)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "X", Name: "X", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductGet_FueraDeAlcanceNoExiste(t *testing.T) {
	db := memory.NewDB()
	categories := NewCategoryUseCase(memory.NewCategoryRepository(db), nil)
	products := newProductUseCase(db)
	ctx := context.Background()

	herr, err := categories.Create(ctx, dto.CategoryRequest{Code: "her", Name: "Herramientas"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{Code: "M-1", Name: "Martillo", CategoryID: herr.ID})
	require.NoError(t, err)

	scoped := ports.WithActor(ctx, ports.Actor{UserID: "u", CategoryIDs: []string{"otra"}})
	_, err = products.GetByID(scoped, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := products.List(scoped, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Page.Total)

	allowed := ports.WithActor(ctx, ports.Actor{UserID: "u", CategoryIDs: []string{herr.ID}})
	got, err := products.GetByID(allowed, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Martillo", got.Name)

	assert.ErrorIs(t, categories.Delete(ctx, herr.ID), domain.ErrConflict)
}

func TestStoreCreate_ActivaPorDefecto(t *testing.T) {
	db := memory.NewDB()
	uc := NewStoreUseCase(memory.NewStoreRepository(db), nil)

	s, err := uc.Create(context.Background(), dto.StoreRequest{Code: "t1", Name: "Centro"})
	require.NoError(t, err)
	assert.Equal(t, "T1", s.Code)
	assert.True(t, s.IsActive)

	inactive := false
	s, err = uc.Update(context.Background(), s.ID, dto.StoreRequest{Name: "Centro", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, s.IsActive)
}

func TestRoleCreate_PermisoDesconocido(t *testing.T) {
	db := memory.NewDB()
	uc := NewRoleUseCase(memory.NewRoleRepository(db), nil)

	_, err := uc.Create(context.Background(), dto.RoleRequest{Name: "x", Permissions: []string{"VOLAR"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := uc.Create(context.Background(), dto.RoleRequest{
		Name:        "bodega",
		Permissions: []string{entity.PermViewInventory, entity.PermViewInventory},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.PermViewInventory}, r.Permissions)
	assert.Len(t, uc.Permissions(), len(entity.PermissionCatalog))
}

func TestUser_CrearActualizarEliminar(t *testing.T) {
	db := memory.NewDB()
	roles := NewRoleUseCase(memory.NewRoleRepository(db), nil)
	users := NewUserUseCase(memory.NewUserRepository(db), memory.NewRoleRepository(db), nil)
	ctx := context.Background()

	role, err := roles.Create(ctx, dto.RoleRequest{Name: "ventas"})
	require.NoError(t, err)

	u, err := users.Create(ctx, dto.CreateUserRequest{
		Username: "Ana", Email: "ANA@bodega.co", Password: "clave-segura", FullName: "Ana", RoleID: role.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, "ana@bodega.co", u.Email)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	_, err = users.Create(ctx, dto.CreateUserRequest{
		Username: "ana2", Email: "ana@bodega.co", Password: "clave-segura", RoleID: role.ID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	inactive := entity.UserStatusInactive
	u, err = users.Update(ctx, u.ID, dto.UpdateUserRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, u.Status)

	self := ports.WithActor(ctx, ports.Actor{UserID: u.ID})
	assert.ErrorIs(t, users.Delete(self, u.ID), domain.ErrForbidden)
	require.NoError(t, users.Delete(ctx, u.ID))
}

func TestUser_AdminNoSeDesactiva(t *testing.T) {
	db := memory.NewDB()
	roles := NewRoleUseCase(memory.NewRoleRepository(db), nil)
	users := NewUserUseCase(memory.NewUserRepository(db), memory.NewRoleRepository(db), nil)
	ctx := context.Background()

	role, err := roles.Create(ctx, dto.RoleRequest{Name: "admin", IsAdmin: true})
	require.NoError(t, err)
	u, err := users.Create(ctx, dto.CreateUserRequest{
		Username: "admin", Email: "admin@bodega.co", Password: "clave-segura", RoleID: role.ID,
	})
	require.NoError(t, err)

	inactive := entity.UserStatusInactive
	_, err = users.Update(ctx, u.ID, dto.UpdateUserRequest{Status: &inactive})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, users.Delete(ctx, u.ID), domain.ErrForbidden)
}

func TestPartners_CrearYBuscar(t *testing.T) {
	db := memory.NewDB()
	suppliers := NewSupplierUseCase(memory.NewSupplierRepository(db), nil)
	customers := NewCustomerUseCase(memory.NewCustomerRepository(db), nil)
	ctx := context.Background()

	s, err := suppliers.Create(ctx, dto.PartnerRequest{Name: "Ferretería", ContactName: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, "Luis", s.ContactName)

	c, err := customers.Create(ctx, dto.PartnerRequest{Name: "Cliente final"})
	require.NoError(t, err)
	list, err := customers.List(ctx, dto.ListQuery{Search: "final"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, c.ID, list.Items[0].ID)
}

func TestSubCategory_PerteneceACategoriaExistente(t *testing.T) {
	db := memory.NewDB()
	categories := NewCategoryUseCase(memory.NewCategoryRepository(db), nil)
	subs := NewSubCategoryUseCase(memory.NewSubCategoryRepository(db), memory.NewCategoryRepository(db), nil)
	ctx := context.Background()

	_, err := subs.Create(ctx, dto.SubCategoryRequest{CategoryID: "no-existe", Code: "man", Name: "Manuales"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	herr, err := categories.Create(ctx, dto.CategoryRequest{Code: "her", Name: "Herramientas"})
	require.NoError(t, err)
	sub, err := subs.Create(ctx, dto.SubCategoryRequest{CategoryID: herr.ID, Code: "man", Name: "Manuales"})
	require.NoError(t, err)
	assert.Equal(t, "MAN", sub.Code)
	assert.Equal(t, "Herramientas", sub.CategoryName)

	list, err := subs.List(ctx, dto.SubCategoryListQuery{CategoryID: herr.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	list, err = subs.List(ctx, dto.SubCategoryListQuery{CategoryID: "otra"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// la categoría con subcategorías no se puede eliminar
	assert.ErrorIs(t, categories.Delete(ctx, herr.ID), domain.ErrConflict)
}

func TestProductCreate_SubcategoriaYUnidad(t *testing.T) {
	db := memory.NewDB()
	categories := NewCategoryUseCase(memory.NewCategoryRepository(db), nil)
	subs := NewSubCategoryUseCase(memory.NewSubCategoryRepository(db), memory.NewCategoryRepository(db), nil)
	units := NewUnitUseCase(memory.NewUnitRepository(db), nil)
	products := newProductUseCase(db)
	ctx := context.Background()

	herr, err := categories.Create(ctx, dto.CategoryRequest{Code: "her", Name: "Herramientas"})
	require.NoError(t, err)
	pint, err := categories.Create(ctx, dto.CategoryRequest{Code: "pin", Name: "Pinturas"})
	require.NoError(t, err)
	man, err := subs.Create(ctx, dto.SubCategoryRequest{CategoryID: herr.ID, Code: "man", Name: "Manuales"})
	require.NoError(t, err)
	caja, err := units.Create(ctx, dto.UnitRequest{Code: "cja", Name: "Caja"})
	require.NoError(t, err)

	// sin categoría toma la de la subcategoría
	p, err := products.Create(ctx, dto.CreateProductRequest{Code: "M-1", Name: "Martillo", SubCategoryID: man.ID, UnitID: caja.ID})
	require.NoError(t, err)
	assert.Equal(t, herr.ID, p.CategoryID)
	assert.Equal(t, "CJA", p.Unit)
	assert.Equal(t, caja.ID, p.UnitID)

	_, err = products.Create(ctx, dto.CreateProductRequest{Code: "M-2", Name: "Brocha", CategoryID: pint.ID, SubCategoryID: man.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cambiar de categoría suelta la subcategoría anterior
	p, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: &pint.ID})
	require.NoError(t, err)
	assert.Equal(t, pint.ID, p.CategoryID)
	assert.Empty(t, p.SubCategoryID)

	assert.ErrorIs(t, units.Delete(ctx, caja.ID), domain.ErrConflict)

	inactive := false
	_, err = units.Update(ctx, caja.ID, dto.UnitRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Code: "M-3", Name: "Pala", UnitID: caja.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
