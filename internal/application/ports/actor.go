package ports

import (
	"context"
	"slices"
)

// Actor usuario autenticado que ejecuta la operación, con datos de la petición para auditoría.
type Actor struct {
	UserID      string
	Username    string
	IsAdmin     bool
	Permissions []string
	CategoryIDs []string
	ProductIDs  []string
	IPAddress   string
	UserAgent   string
}

// Can indica si el actor tiene el permiso.
func (a Actor) Can(code string) bool {
	return a.IsAdmin || slices.Contains(a.Permissions, code)
}

// Scoped indica si el actor tiene restringida la visibilidad de productos.
func (a Actor) Scoped() bool {
	return !a.IsAdmin && (len(a.CategoryIDs) > 0 || len(a.ProductIDs) > 0)
}

type actorKey struct{}

// WithActor guarda el actor en el contexto.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom recupera el actor; ok=false en procesos sin sesión (cron, CLI).
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// CanSeeProduct aplica el alcance por categoría/producto del rol. Sin alcance ve todo.
func (a Actor) CanSeeProduct(productID, categoryID string) bool {
	if !a.Scoped() {
		return true
	}
	if slices.Contains(a.ProductIDs, productID) {
		return true
	}
	return categoryID != "" && slices.Contains(a.CategoryIDs, categoryID)
}
