package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// StoreTransferRepository persistencia de traslados con sus líneas.
type StoreTransferRepository interface {
	Create(ctx context.Context, t *entity.StoreTransfer) error
	// GetByID incluye Items. (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.StoreTransfer, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.StoreTransfer, error)
	// Update reemplaza cabecera e Items.
	Update(ctx context.Context, t *entity.StoreTransfer) error
	UpdateStatus(ctx context.Context, t *entity.StoreTransfer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TransferFilter, limit, offset int) ([]*entity.StoreTransfer, int, error)
	CountByDate(ctx context.Context, day time.Time) (int, error)
}
