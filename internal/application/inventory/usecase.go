package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/inventory"
)

// AdjustmentUseCase ajustes manuales y saldos iniciales de inventario.
// Cada operación corre en una transacción con bloqueo de fila y Commit/Rollback.
type AdjustmentUseCase struct {
	txRunner ports.TxRunner
	activity ports.ActivityRecorder
	metrics  ports.BusinessMetrics
	now      func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner ports.TxRunner, activity ports.ActivityRecorder, metrics ports.BusinessMetrics) *AdjustmentUseCase {
	if activity == nil {
		activity = ports.NopActivity{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &AdjustmentUseCase{txRunner: txRunner, activity: activity, metrics: metrics, now: time.Now}
}

// Adjust aplica un delta con signo a la existencia de (producto, tienda).
// Rechaza un resultado negativo salvo AllowNegative.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in dto.AdjustInventoryRequest) (*dto.TransactionResponse, error) {
	if err := validateAdjustment(in); err != nil {
		return nil, err
	}
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var posted *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		var err error
		posted, err = uc.adjustOne(ctx, uow, actor, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.LedgerEntry(posted.Type)
	resp := ToTransactionResponse(posted)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionAdjust,
		Description: fmt.Sprintf("Ajuste de %s unidades: %s", in.Quantity.String(), in.Reason),
		EntityType:  "Inventory",
		EntityID:    in.ProductID + ":" + in.StoreID,
		OldValues:   map[string]string{"quantity": posted.QuantityBefore.String()},
		NewValues:   resp,
		Module:      entity.ModuleInventory,
	})
	return &resp, nil
}

// BulkAdjust aplica todos los ajustes en una sola transacción: si uno falla no se aplica ninguno.
func (uc *AdjustmentUseCase) BulkAdjust(ctx context.Context, in dto.BulkAdjustRequest) ([]dto.TransactionResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i, it := range in.Items {
		if err := validateAdjustment(it); err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
	}
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	posted := make([]*entity.InventoryTransaction, 0, len(in.Items))
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		for i, it := range in.Items {
			tx, err := uc.adjustOne(ctx, uow, actor, it, now)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			posted = append(posted, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionResponse, 0, len(posted))
	for _, tx := range posted {
		uc.metrics.LedgerEntry(tx.Type)
		out = append(out, ToTransactionResponse(tx))
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionAdjust,
		Description: fmt.Sprintf("Ajuste masivo de %d líneas", len(out)),
		EntityType:  "Inventory",
		NewValues:   out,
		Module:      entity.ModuleInventory,
	})
	return out, nil
}

// InitialStock registra el saldo inicial de un producto en una tienda. Solo se permite
// si la existencia no fue creada antes o sigue en cero.
func (uc *AdjustmentUseCase) InitialStock(ctx context.Context, in dto.InitialStockRequest) (*dto.TransactionResponse, error) {
	if in.ProductID == "" || in.StoreID == "" || !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var posted *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		product, err := loadTargets(ctx, uow, actor, in.ProductID, in.StoreID)
		if err != nil {
			return err
		}
		current, err := uow.Inventory.GetForUpdate(ctx, in.ProductID, in.StoreID)
		if err != nil {
			return err
		}
		if !current.Quantity.IsZero() {
			return fmt.Errorf("%w: el producto ya tiene existencia en la tienda", domain.ErrConflict)
		}
		newCost := inventory.CostCalculator(current.Quantity, product.Cost, in.Quantity, in.UnitCost)
		if err := uow.Products.UpdateCost(ctx, product.ID, newCost); err != nil {
			return err
		}
		posted, err = Post(ctx, uow, Entry{
			ProductID: in.ProductID,
			StoreID:   in.StoreID,
			Type:      entity.TxTypeOpeningBalance,
			Delta:     in.Quantity,
			UnitCost:  in.UnitCost,
			Reason:    "Saldo inicial",
			CreatedBy: actor.UserID,
			At:        now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.LedgerEntry(posted.Type)
	resp := ToTransactionResponse(posted)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionCreate,
		Description: "Saldo inicial de inventario",
		EntityType:  "Inventory",
		EntityID:    in.ProductID + ":" + in.StoreID,
		NewValues:   resp,
		Module:      entity.ModuleInventory,
	})
	return &resp, nil
}

func (uc *AdjustmentUseCase) adjustOne(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, in dto.AdjustInventoryRequest, now time.Time) (*entity.InventoryTransaction, error) {
	product, err := loadTargets(ctx, uow, actor, in.ProductID, in.StoreID)
	if err != nil {
		return nil, err
	}
	return Post(ctx, uow, Entry{
		ProductID:     in.ProductID,
		StoreID:       in.StoreID,
		Type:          inventory.AdjustmentType(in.Quantity),
		Delta:         in.Quantity,
		UnitCost:      product.Cost,
		Reason:        strings.TrimSpace(in.Reason),
		AllowNegative: in.AllowNegative,
		CreatedBy:     actor.UserID,
		At:            now,
	})
}

// loadTargets valida que producto y tienda existan y que el producto esté en el alcance del actor.
func loadTargets(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, productID, storeID string) (*entity.Product, error) {
	product, err := uow.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	if !actor.CanSeeProduct(product.ID, product.CategoryID) {
		return nil, domain.ErrForbidden
	}
	store, err := uow.Stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}
	if !store.IsActive {
		return nil, fmt.Errorf("%w: la tienda %s está inactiva", domain.ErrInvalidInput, store.Code)
	}
	return product, nil
}

func validateAdjustment(in dto.AdjustInventoryRequest) error {
	if in.ProductID == "" || in.StoreID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return fmt.Errorf("%w: la cantidad del ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Reason) == "" {
		return fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}
