package transfer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

const entityType = "StoreTransfer"

// UseCase ciclo de vida de los traslados entre tiendas: DRAFT -> COMPLETED | CANCELLED.
type UseCase struct {
	txRunner ports.TxRunner
	repo     repository.StoreTransferRepository
	txRepo   repository.InventoryTransactionRepository
	stores   repository.StoreRepository
	products repository.ProductRepository
	slips    ports.TransferSlipRenderer
	activity ports.ActivityRecorder
	metrics  ports.BusinessMetrics
	now      func() time.Time
}

// Deps dependencias del caso de uso. Slips, Activity y Metrics son opcionales.
type Deps struct {
	TxRunner     ports.TxRunner
	Transfers    repository.StoreTransferRepository
	Transactions repository.InventoryTransactionRepository
	Stores       repository.StoreRepository
	Products     repository.ProductRepository
	Slips        ports.TransferSlipRenderer
	Activity     ports.ActivityRecorder
	Metrics      ports.BusinessMetrics
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		txRunner: d.TxRunner,
		repo:     d.Transfers,
		txRepo:   d.Transactions,
		stores:   d.Stores,
		products: d.Products,
		slips:    d.Slips,
		activity: d.Activity,
		metrics:  d.Metrics,
		now:      time.Now,
	}
	if uc.activity == nil {
		uc.activity = ports.NopActivity{}
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopMetrics{}
	}
	return uc
}

// Create registra un traslado en borrador. No mueve inventario.
func (uc *UseCase) Create(ctx context.Context, in dto.TransferRequest) (*dto.TransferResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()
	t := &entity.StoreTransfer{
		ID:        uuid.New().String(),
		Status:    entity.TransferStatusDraft,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		if err := applyRequest(ctx, uow, actor, t, in, now); err != nil {
			return err
		}
		n, err := uow.Transfers.CountByDate(ctx, now)
		if err != nil {
			return err
		}
		t.Number = fmt.Sprintf("TR-%s-%04d", now.Format("20060102"), n+1)
		return uow.Transfers.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(t)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionCreate,
		Description: "Traslado " + t.Number + " creado",
		EntityType:  entityType,
		EntityID:    t.ID,
		NewValues:   resp,
		Module:      entity.ModuleTransfers,
	})
	return resp, nil
}

// Update reemplaza tiendas, fecha, notas y líneas. Solo en borrador.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var old, updated *dto.TransferResponse
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		t, err := loadDraft(ctx, uow, id)
		if err != nil {
			return err
		}
		old = toResponse(t)
		if err := applyRequest(ctx, uow, actor, t, in, now); err != nil {
			return err
		}
		t.UpdatedAt = now
		if err := uow.Transfers.Update(ctx, t); err != nil {
			return err
		}
		updated = toResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionUpdate,
		Description: "Traslado " + updated.Number + " actualizado",
		EntityType:  entityType,
		EntityID:    id,
		OldValues:   old,
		NewValues:   updated,
		Module:      entity.ModuleTransfers,
	})
	return updated, nil
}

// Delete elimina un traslado en borrador.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	var number string
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		t, err := loadDraft(ctx, uow, id)
		if err != nil {
			return err
		}
		number = t.Number
		return uow.Transfers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionDelete,
		Description: "Traslado " + number + " eliminado",
		EntityType:  entityType,
		EntityID:    id,
		Module:      entity.ModuleTransfers,
		Severity:    entity.SeverityWarning,
	})
	return nil
}

// Complete mueve las existencias en una sola transacción: por cada línea descuenta el origen
// (TRANSFER_OUT) y suma al destino (TRANSFER_IN), ambas filas ligadas por TransferID.
// Falla sin efectos si alguna línea no tiene existencia suficiente en el origen.
func (uc *UseCase) Complete(ctx context.Context, id string) (*dto.TransferResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var t *entity.StoreTransfer
	var posted []*entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		var err error
		t, err = loadDraft(ctx, uow, id)
		if err != nil {
			return err
		}
		if len(t.Items) == 0 {
			return fmt.Errorf("%w: el traslado no tiene líneas", domain.ErrInvalidInput)
		}
		if t.FromStoreID == t.ToStoreID {
			return domain.ErrSameStore
		}

		// orden fijo de bloqueo por producto
		items := append([]entity.StoreTransferItem(nil), t.Items...)
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		var shortages []domain.StockShortage
		for _, it := range items {
			src, err := uow.Inventory.GetForUpdate(ctx, it.ProductID, t.FromStoreID)
			if err != nil {
				return err
			}
			if src.Quantity.LessThan(it.Quantity) {
				shortages = append(shortages, domain.StockShortage{
					ProductID: it.ProductID, StoreID: t.FromStoreID,
					Requested: it.Quantity, Available: src.Quantity,
				})
			}
		}
		if len(shortages) > 0 {
			return &domain.InsufficientStockError{Shortages: shortages}
		}

		reason := "Traslado " + t.Number
		for _, it := range items {
			out, err := inventory.Post(ctx, uow, inventory.Entry{
				ProductID: it.ProductID, StoreID: t.FromStoreID, Type: entity.TxTypeTransferOut,
				Delta: it.Quantity.Neg(), UnitCost: it.UnitCost, Reason: reason,
				TransferID: t.ID, CreatedBy: actor.UserID, At: now,
			})
			if err != nil {
				return err
			}
			in, err := inventory.Post(ctx, uow, inventory.Entry{
				ProductID: it.ProductID, StoreID: t.ToStoreID, Type: entity.TxTypeTransferIn,
				Delta: it.Quantity, UnitCost: it.UnitCost, Reason: reason,
				TransferID: t.ID, CreatedBy: actor.UserID, At: now,
			})
			if err != nil {
				return err
			}
			posted = append(posted, out, in)
		}

		t.Status = entity.TransferStatusCompleted
		t.CompletedBy = actor.UserID
		t.CompletedAt = &now
		t.UpdatedAt = now
		return uow.Transfers.UpdateStatus(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	for _, p := range posted {
		uc.metrics.LedgerEntry(p.Type)
	}
	uc.metrics.TransferFinished(entity.TransferStatusCompleted)
	resp := toResponse(t)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionComplete,
		Description: "Traslado " + t.Number + " completado",
		EntityType:  entityType,
		EntityID:    t.ID,
		OldValues:   map[string]string{"status": entity.TransferStatusDraft},
		NewValues:   map[string]string{"status": entity.TransferStatusCompleted},
		Module:      entity.ModuleTransfers,
	})
	return resp, nil
}

// Cancel marca el traslado como cancelado. Nunca toca inventario.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.TransferResponse, error) {
	now := uc.now()
	var t *entity.StoreTransfer
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		var err error
		t, err = loadDraft(ctx, uow, id)
		if err != nil {
			return err
		}
		t.Status = entity.TransferStatusCancelled
		t.CancelledAt = &now
		t.UpdatedAt = now
		return uow.Transfers.UpdateStatus(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.TransferFinished(entity.TransferStatusCancelled)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionCancel,
		Description: "Traslado " + t.Number + " cancelado",
		EntityType:  entityType,
		EntityID:    t.ID,
		OldValues:   map[string]string{"status": entity.TransferStatusDraft},
		NewValues:   map[string]string{"status": entity.TransferStatusCancelled},
		Module:      entity.ModuleTransfers,
		Severity:    entity.SeverityWarning,
	})
	return toResponse(t), nil
}

// Get obtiene un traslado con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(t), nil
}

// List traslados filtrados y paginados (sin líneas).
func (uc *UseCase) List(ctx context.Context, q dto.TransferListQuery) (*dto.TransferListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.TransferFilter{
		Status:      q.Status,
		FromStoreID: q.FromStoreID,
		ToStoreID:   q.ToStoreID,
		From:        q.From,
		To:          q.To,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.TransferListResponse{
		Items: make([]dto.TransferResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, t := range list {
		out.Items = append(out.Items, *toResponse(t))
	}
	return out, nil
}

// Transactions filas del libro generadas por el traslado.
func (uc *UseCase) Transactions(ctx context.Context, id string) ([]dto.TransactionResponse, error) {
	rows, _, err := uc.txRepo.List(ctx, repository.TransactionFilter{TransferID: id}, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, inventory.ToTransactionResponse(r))
	}
	return out, nil
}

// Slip genera el comprobante PDF del traslado.
func (uc *UseCase) Slip(ctx context.Context, id string) ([]byte, error) {
	if uc.slips == nil {
		return nil, errors.New("generador de PDF no configurado")
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	from, err := uc.stores.GetByID(ctx, t.FromStoreID)
	if err != nil {
		return nil, err
	}
	to, err := uc.stores.GetByID(ctx, t.ToStoreID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(t.Items))
	for _, it := range t.Items {
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[p.ID] = p
		}
	}
	return uc.slips.RenderTransferSlip(ports.TransferSlip{Transfer: t, FromStore: from, ToStore: to, Products: products})
}

func loadDraft(ctx context.Context, uow ports.UnitOfWork, id string) (*entity.StoreTransfer, error) {
	t, err := uow.Transfers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !t.IsDraft() {
		return nil, fmt.Errorf("%w: el traslado está %s", domain.ErrInvalidTransition, t.Status)
	}
	return t, nil
}

// applyRequest valida tiendas y productos y copia la solicitud sobre t.
// Las líneas repetidas del mismo producto se suman.
func applyRequest(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, t *entity.StoreTransfer, in dto.TransferRequest, now time.Time) error {
	if in.FromStoreID == "" || in.ToStoreID == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	if in.FromStoreID == in.ToStoreID {
		return domain.ErrSameStore
	}
	for _, sid := range []string{in.FromStoreID, in.ToStoreID} {
		s, err := uow.Stores.GetByID(ctx, sid)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, sid)
		}
		if !s.IsActive {
			return fmt.Errorf("%w: la tienda %s está inactiva", domain.ErrInvalidInput, s.Code)
		}
	}

	merged := make(map[string]int, len(in.Items))
	items := make([]entity.StoreTransferItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() || it.UnitCost.IsNegative() {
			return fmt.Errorf("%w: línea %d: cantidad debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		p, err := uow.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		if !actor.CanSeeProduct(p.ID, p.CategoryID) {
			return domain.ErrForbidden
		}
		if idx, ok := merged[it.ProductID]; ok {
			items[idx].Quantity = items[idx].Quantity.Add(it.Quantity)
			continue
		}
		cost := it.UnitCost
		if cost.IsZero() {
			cost = p.Cost
		}
		merged[it.ProductID] = len(items)
		items = append(items, entity.StoreTransferItem{
			ID:         uuid.New().String(),
			TransferID: t.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitCost:   cost,
			Notes:      strings.TrimSpace(it.Notes),
		})
	}

	t.FromStoreID = in.FromStoreID
	t.ToStoreID = in.ToStoreID
	t.Notes = strings.TrimSpace(in.Notes)
	t.TransferDate = now
	if in.TransferDate != nil {
		t.TransferDate = *in.TransferDate
	}
	t.Items = items
	return nil
}

func toResponse(t *entity.StoreTransfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:            t.ID,
		Number:        t.Number,
		FromStoreID:   t.FromStoreID,
		ToStoreID:     t.ToStoreID,
		TransferDate:  t.TransferDate,
		Status:        t.Status,
		Notes:         t.Notes,
		TotalQuantity: decimal.Zero,
		CreatedBy:     t.CreatedBy,
		CompletedBy:   t.CompletedBy,
		CompletedAt:   t.CompletedAt,
		CancelledAt:   t.CancelledAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Items:         make([]dto.TransferItemResponse, 0, len(t.Items)),
	}
	for _, it := range t.Items {
		resp.TotalQuantity = resp.TotalQuantity.Add(it.Quantity)
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Notes:     it.Notes,
		})
	}
	return resp
}
