package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Permisos y alcance por categoría/producto viajan en el token para que los middlewares
// decidan sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	IsAdmin     bool     `json:"is_admin"`
	Permissions []string `json:"permissions,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	ProductIDs  []string `json:"product_ids,omitempty"`
}

// HasPermission indica si el token trae el permiso (los administradores tienen todos).
func (c *Claims) HasPermission(code string) bool {
	if c.IsAdmin {
		return true
	}
	return slices.Contains(c.Permissions, code)
}

// ErrEmptySecret se devuelve cuando no hay secreto configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Generate genera un token JWT firmado con HS256 a partir de los claims de aplicación.
// Los claims registrados (issuer, subject, iat, exp) se completan aquí.
func Generate(secret, issuer string, expMinutes int, claims Claims) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("claims inválidos: user_id vacío")
	}
	return claims, nil
}
