package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
	"github.com/jhoicas/Warehousing-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout y datos de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
	activity ports.ActivityRecorder
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig, activity ports.ActivityRecorder) *AuthUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg, activity: activity, now: time.Now}
}

// Login acepta usuario o email. Verifica password con bcrypt, arma los claims desde el rol
// (permisos y alcance) y registra el intento en la bitácora, exitoso o no.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.findUser(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.failed(ctx, login, "", "usuario inexistente")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.failed(ctx, user.Username, user.ID, "password incorrecto")
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		uc.failed(ctx, user.Username, user.ID, "usuario inactivo")
		return nil, domain.ErrForbidden
	}

	claims := jwt.Claims{UserID: user.ID, Username: user.Username}
	if user.RoleID != "" {
		role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			claims.Role = role.Name
			claims.IsAdmin = role.IsAdmin
			claims.Permissions = role.Permissions
			claims.CategoryIDs = role.CategoryIDs
			claims.ProductIDs = role.ProductIDs
		}
	}
	if user.Username == entity.AdminUsername {
		claims.IsAdmin = true
	}
	if claims.Permissions == nil {
		claims.Permissions = []string{}
	}

	now := uc.now()
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, claims)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	actor, _ := ports.ActorFrom(ctx)
	actor.UserID, actor.Username, actor.IsAdmin = user.ID, user.Username, claims.IsAdmin
	uc.activity.Record(ports.WithActor(ctx, actor), ports.ActivityEntry{
		Action:      entity.ActionLogin,
		Description: "Inicio de sesión",
		EntityType:  "User",
		EntityID:    user.ID,
		Module:      entity.ModuleAuth,
	})

	return &dto.LoginResponse{
		Token:       token,
		ExpiresAt:   now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:        *usecase.ToUserResponse(user),
		IsAdmin:     claims.IsAdmin,
		Permissions: claims.Permissions,
	}, nil
}

// Logout solo deja rastro en la bitácora; el token expira por sí mismo.
func (uc *AuthUseCase) Logout(ctx context.Context) {
	actor, _ := ports.ActorFrom(ctx)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionLogout,
		Description: "Cierre de sesión",
		EntityType:  "User",
		EntityID:    actor.UserID,
		Module:      entity.ModuleAuth,
	})
}

// Me datos de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context) (*dto.MeResponse, error) {
	actor, ok := ports.ActorFrom(ctx)
	if !ok || actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &dto.MeResponse{
		UserID:      actor.UserID,
		Username:    actor.Username,
		IsAdmin:     actor.IsAdmin,
		Permissions: nonNil(actor.Permissions),
		CategoryIDs: nonNil(actor.CategoryIDs),
		ProductIDs:  nonNil(actor.ProductIDs),
	}, nil
}

func (uc *AuthUseCase) findUser(ctx context.Context, login string) (*entity.User, error) {
	if strings.Contains(login, "@") {
		return uc.userRepo.GetByEmail(ctx, login)
	}
	return uc.userRepo.GetByUsername(ctx, login)
}

func (uc *AuthUseCase) failed(ctx context.Context, username, userID, reason string) {
	actor, _ := ports.ActorFrom(ctx)
	actor.UserID, actor.Username = userID, username
	uc.activity.Record(ports.WithActor(ctx, actor), ports.ActivityEntry{
		Action:      entity.ActionLogin,
		Description: "Intento de inicio de sesión fallido: " + reason,
		EntityType:  "User",
		EntityID:    userID,
		Module:      entity.ModuleAuth,
		Severity:    entity.SeverityWarning,
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
