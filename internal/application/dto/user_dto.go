package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	RoleID   string `json:"role_id" validate:"required,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	RoleID   *string `json:"role_id" validate:"omitempty,uuid"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	RoleID      string     `json:"role_id"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login: usuario o email más password.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
	IsAdmin     bool         `json:"is_admin"`
	Permissions []string     `json:"permissions"`
}

// MeResponse datos del usuario autenticado tomados del token.
type MeResponse struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	IsAdmin     bool     `json:"is_admin"`
	Permissions []string `json:"permissions"`
	CategoryIDs []string `json:"category_ids"`
	ProductIDs  []string `json:"product_ids"`
}

// RoleRequest crear/actualizar rol.
type RoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"max=500"`
	IsAdmin     bool     `json:"is_admin"`
	Permissions []string `json:"permissions" validate:"dive,required"`
	CategoryIDs []string `json:"category_ids" validate:"dive,uuid"`
	ProductIDs  []string `json:"product_ids" validate:"dive,uuid"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsAdmin     bool      `json:"is_admin"`
	Permissions []string  `json:"permissions"`
	CategoryIDs []string  `json:"category_ids"`
	ProductIDs  []string  `json:"product_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleListResponse lista paginada de roles.
type RoleListResponse struct {
	Items []RoleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PermissionResponse entrada del catálogo de permisos.
type PermissionResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Module      string `json:"module"`
}
