package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
	"github.com/jhoicas/Warehousing-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

type recorder struct {
	entries []ports.ActivityEntry
	actors  []ports.Actor
}

func (r *recorder) Record(ctx context.Context, e ports.ActivityEntry) {
	a, _ := ports.ActorFrom(ctx)
	r.entries = append(r.entries, e)
	r.actors = append(r.actors, a)
}

type authEnv struct {
	uc       *AuthUseCase
	users    *memory.UserRepo
	role     *entity.Role
	activity *recorder
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	db := memory.NewDB()
	roles := memory.NewRoleRepository(db)
	users := memory.NewUserRepository(db)
	role := &entity.Role{
		ID: uuid.NewString(), Name: "bodega",
		Permissions: []string{entity.PermViewInventory},
		CategoryIDs: []string{"cat-1"},
	}
	require.NoError(t, roles.Create(context.Background(), role))
	rec := &recorder{}
	return &authEnv{
		uc:       NewAuthUseCase(users, roles, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "warehousing"}, rec),
		users:    users,
		role:     role,
		activity: rec,
	}
}

func (e *authEnv) addUser(t *testing.T, username, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID: uuid.NewString(), Username: username, Email: username + "@bodega.co",
		PasswordHash: string(hash), RoleID: e.role.ID, Status: status,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func TestLogin_PorUsuarioEmiteClaimsDelRol(t *testing.T) {
	e := newAuthEnv(t)
	u := e.addUser(t, "operario", entity.UserStatusActive)

	out, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "Operario", Password: "clave-segura"})
	require.NoError(t, err)
	assert.False(t, out.IsAdmin)
	assert.Equal(t, []string{entity.PermViewInventory}, out.Permissions)
	require.NotNil(t, out.User.LastLoginAt)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "bodega", claims.Role)
	assert.Equal(t, []string{"cat-1"}, claims.CategoryIDs)

	require.Len(t, e.activity.entries, 1)
	assert.Equal(t, entity.ActionLogin, e.activity.entries[0].Action)
	assert.Equal(t, u.ID, e.activity.actors[0].UserID)
}

func TestLogin_PorEmail(t *testing.T) {
	e := newAuthEnv(t)
	e.addUser(t, "ventas", entity.UserStatusActive)

	_, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "ventas@bodega.co", Password: "clave-segura"})
	assert.NoError(t, err)
}

func TestLogin_PasswordIncorrectoQuedaEnBitacora(t *testing.T) {
	e := newAuthEnv(t)
	e.addUser(t, "operario", entity.UserStatusActive)

	_, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "operario", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Len(t, e.activity.entries, 1)
	assert.Equal(t, entity.SeverityWarning, e.activity.entries[0].Severity)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	e := newAuthEnv(t)

	_, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	e := newAuthEnv(t)
	e.addUser(t, "retirado", entity.UserStatusInactive)

	_, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "retirado", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UsuarioAdminSiempreEsAdministrador(t *testing.T) {
	e := newAuthEnv(t)
	e.addUser(t, entity.AdminUsername, entity.UserStatusActive)

	out, err := e.uc.Login(context.Background(), dto.LoginRequest{Login: "admin", Password: "clave-segura"})
	require.NoError(t, err)
	assert.True(t, out.IsAdmin)
}

func TestMe_SinSesion(t *testing.T) {
	e := newAuthEnv(t)

	_, err := e.uc.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	me, err := e.uc.Me(ports.WithActor(context.Background(), ports.Actor{UserID: "u-1", Username: "x"}))
	require.NoError(t, err)
	assert.Equal(t, "u-1", me.UserID)
	assert.NotNil(t, me.Permissions)
}
