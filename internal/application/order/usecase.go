package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Warehousing-api/internal/domain/inventory"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

const entityType = "Order"

// UseCase órdenes de compra y venta. Solo Complete y la cancelación de una orden
// completada mueven inventario.
type UseCase struct {
	txRunner  ports.TxRunner
	repo      repository.OrderRepository
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	activity  ports.ActivityRecorder
	metrics   ports.BusinessMetrics
	now       func() time.Time
}

// Deps dependencias del caso de uso. Activity y Metrics son opcionales.
type Deps struct {
	TxRunner  ports.TxRunner
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Suppliers repository.SupplierRepository
	Activity  ports.ActivityRecorder
	Metrics   ports.BusinessMetrics
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		txRunner:  d.TxRunner,
		repo:      d.Orders,
		customers: d.Customers,
		suppliers: d.Suppliers,
		activity:  d.Activity,
		metrics:   d.Metrics,
		now:       time.Now,
	}
	if uc.activity == nil {
		uc.activity = ports.NopActivity{}
	}
	if uc.metrics == nil {
		uc.metrics = ports.NopMetrics{}
	}
	return uc
}

// Create registra la orden en borrador con totales derivados de las líneas.
func (uc *UseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	if err := uc.validateParty(ctx, in); err != nil {
		return nil, err
	}
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Status:    entity.OrderStatusDraft,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		if err := applyRequest(ctx, uow, actor, o, in, now); err != nil {
			return err
		}
		n, err := uow.Orders.CountByDate(ctx, o.Type, now)
		if err != nil {
			return err
		}
		o.Number = fmt.Sprintf("%s-%s-%04d", numberPrefix(o.Type), now.Format("20060102"), n+1)
		return uow.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(o)
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionCreate,
		Description: "Orden " + o.Number + " creada",
		EntityType:  entityType,
		EntityID:    o.ID,
		NewValues:   resp,
		Module:      entity.ModuleOrders,
	})
	return resp, nil
}

// Update reemplaza cabecera y líneas. Solo en DRAFT o PENDING; el tipo no cambia.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var old, updated *dto.OrderResponse
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		o, err := uow.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !o.IsEditable() {
			return fmt.Errorf("%w: la orden está %s", domain.ErrInvalidTransition, o.Status)
		}
		if in.Type != "" && in.Type != o.Type {
			return fmt.Errorf("%w: no se puede cambiar el tipo de la orden", domain.ErrInvalidInput)
		}
		in.Type = o.Type
		if err := uc.validateParty(ctx, in); err != nil {
			return err
		}
		old = toResponse(o)
		if err := applyRequest(ctx, uow, actor, o, in, now); err != nil {
			return err
		}
		o.UpdatedAt = now
		if err := uow.Orders.Update(ctx, o); err != nil {
			return err
		}
		updated = toResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionUpdate,
		Description: "Orden " + updated.Number + " actualizada",
		EntityType:  entityType,
		EntityID:    id,
		OldValues:   old,
		NewValues:   updated,
		Module:      entity.ModuleOrders,
	})
	return updated, nil
}

// Delete elimina una orden en borrador.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	var number string
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		o, err := uow.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusDraft {
			return fmt.Errorf("%w: solo se eliminan órdenes en borrador", domain.ErrInvalidTransition)
		}
		number = o.Number
		return uow.Orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      entity.ActionDelete,
		Description: "Orden " + number + " eliminada",
		EntityType:  entityType,
		EntityID:    id,
		Module:      entity.ModuleOrders,
		Severity:    entity.SeverityWarning,
	})
	return nil
}

// MarkPending DRAFT -> PENDING.
func (uc *UseCase) MarkPending(ctx context.Context, id string) (*dto.OrderResponse, error) {
	now := uc.now()
	o, err := uc.transition(ctx, id, entity.OrderStatusPending, func(_ ports.UnitOfWork, o *entity.Order) error {
		if len(o.Items) == 0 {
			return fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidInput)
		}
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// Complete PENDING -> COMPLETED. Una compra ingresa cada línea a su tienda y recalcula
// el costo promedio del producto; una venta valida todas las líneas antes de descontar.
func (uc *UseCase) Complete(ctx context.Context, id string) (*dto.OrderResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var posted []*entity.InventoryTransaction
	o, err := uc.transition(ctx, id, entity.OrderStatusCompleted, func(uow ports.UnitOfWork, o *entity.Order) error {
		var err error
		if o.IsPurchase() {
			posted, err = receive(ctx, uow, actor, o, now)
		} else {
			posted, err = dispatch(ctx, uow, actor, o, now)
		}
		if err != nil {
			return err
		}
		o.CompletedAt = &now
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range posted {
		uc.metrics.LedgerEntry(p.Type)
	}
	uc.metrics.OrderFinished(o.Type, entity.OrderStatusCompleted)
	return toResponse(o), nil
}

// Cancel anula la orden. Desde DRAFT o PENDING no toca inventario; desde COMPLETED
// registra la devolución de cada línea (PURCHASE_RETURN o SALE_RETURN).
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	actor, _ := ports.ActorFrom(ctx)
	now := uc.now()

	var posted []*entity.InventoryTransaction
	o, err := uc.transition(ctx, id, entity.OrderStatusCancelled, func(uow ports.UnitOfWork, o *entity.Order) error {
		if o.Status == entity.OrderStatusCompleted {
			var err error
			posted, err = reverse(ctx, uow, actor, o, now)
			if err != nil {
				return err
			}
		}
		o.CancelledAt = &now
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range posted {
		uc.metrics.LedgerEntry(p.Type)
	}
	uc.metrics.OrderFinished(o.Type, entity.OrderStatusCancelled)
	return toResponse(o), nil
}

// Get obtiene una orden con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(o), nil
}

// List órdenes filtradas y paginadas (sin líneas).
func (uc *UseCase) List(ctx context.Context, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.OrderFilter{
		Type:       q.Type,
		Status:     q.Status,
		CustomerID: q.CustomerID,
		SupplierID: q.SupplierID,
		From:       q.From,
		To:         q.To,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, o := range list {
		out.Items = append(out.Items, *toResponse(o))
	}
	return out, nil
}

// transition bloquea la orden, valida el paso de estado, ejecuta apply y persiste el nuevo estado.
func (uc *UseCase) transition(ctx context.Context, id, to string, apply func(uow ports.UnitOfWork, o *entity.Order) error) (*entity.Order, error) {
	var o *entity.Order
	var from string
	err := uc.txRunner.Run(ctx, func(uow ports.UnitOfWork) error {
		var err error
		o, err = uow.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		from = o.Status
		if !entity.CanTransitionOrder(from, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
		}
		if err := apply(uow, o); err != nil {
			return err
		}
		o.Status = to
		return uow.Orders.UpdateStatus(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	action, severity := entity.ActionUpdate, entity.SeverityInfo
	switch to {
	case entity.OrderStatusCompleted:
		action = entity.ActionComplete
	case entity.OrderStatusCancelled:
		action, severity = entity.ActionCancel, entity.SeverityWarning
	}
	uc.activity.Record(ctx, ports.ActivityEntry{
		Action:      action,
		Description: fmt.Sprintf("Orden %s: %s -> %s", o.Number, from, to),
		EntityType:  entityType,
		EntityID:    o.ID,
		OldValues:   map[string]string{"status": from},
		NewValues:   map[string]string{"status": to},
		Module:      entity.ModuleOrders,
		Severity:    severity,
	})
	return o, nil
}

// receive ingresa una compra: costo promedio ponderado sobre la existencia total y fila PURCHASE por línea.
func receive(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, o *entity.Order, now time.Time) ([]*entity.InventoryTransaction, error) {
	posted := make([]*entity.InventoryTransaction, 0, len(o.Items))
	for _, it := range o.Items {
		p, err := uow.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		onHand, err := totalOnHand(ctx, uow, it.ProductID)
		if err != nil {
			return nil, err
		}
		cost := domaininv.CostCalculator(onHand, p.Cost, it.Quantity, it.UnitCost)
		if err := uow.Products.UpdateCost(ctx, p.ID, cost); err != nil {
			return nil, err
		}
		tx, err := inventory.Post(ctx, uow, inventory.Entry{
			ProductID: it.ProductID, StoreID: it.StoreID, Type: entity.TxTypePurchase,
			Delta: it.Quantity, UnitCost: it.UnitCost, Reason: "Compra " + o.Number,
			OrderID: o.ID, OrderItemID: it.ID, CreatedBy: actor.UserID, At: now,
		})
		if err != nil {
			return nil, err
		}
		posted = append(posted, tx)
	}
	return posted, nil
}

// dispatch descuenta una venta al costo promedio vigente, que queda guardado en cada línea
// para que la anulación devuelva al mismo costo. Todas las faltas se reportan juntas y nada se aplica.
func dispatch(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, o *entity.Order, now time.Time) ([]*entity.InventoryTransaction, error) {
	if err := checkAvailable(ctx, uow, o.Items); err != nil {
		return nil, err
	}
	posted := make([]*entity.InventoryTransaction, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		p, err := uow.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			it.UnitCost = p.Cost
		}
		tx, err := inventory.Post(ctx, uow, inventory.Entry{
			ProductID: it.ProductID, StoreID: it.StoreID, Type: entity.TxTypeSale,
			Delta: it.Quantity.Neg(), UnitCost: it.UnitCost, Reason: "Venta " + o.Number,
			OrderID: o.ID, OrderItemID: it.ID, CreatedBy: actor.UserID, At: now,
		})
		if err != nil {
			return nil, err
		}
		posted = append(posted, tx)
	}
	if err := uow.Orders.UpdateItemCosts(ctx, o); err != nil {
		return nil, err
	}
	return posted, nil
}

// reverse devuelve el inventario de una orden completada. Devolver una compra nunca deja existencia negativa.
func reverse(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, o *entity.Order, now time.Time) ([]*entity.InventoryTransaction, error) {
	txType, sign, reason := entity.TxTypeSaleReturn, decimal.NewFromInt(1), "Anulación venta "
	if o.IsPurchase() {
		txType, sign, reason = entity.TxTypePurchaseReturn, decimal.NewFromInt(-1), "Anulación compra "
		if err := checkAvailable(ctx, uow, o.Items); err != nil {
			return nil, err
		}
	}
	posted := make([]*entity.InventoryTransaction, 0, len(o.Items))
	for _, it := range o.Items {
		tx, err := inventory.Post(ctx, uow, inventory.Entry{
			ProductID: it.ProductID, StoreID: it.StoreID, Type: txType,
			Delta: it.Quantity.Mul(sign), UnitCost: it.UnitCost, Reason: reason + o.Number,
			OrderID: o.ID, OrderItemID: it.ID, CreatedBy: actor.UserID, At: now,
		})
		if err != nil {
			return nil, err
		}
		posted = append(posted, tx)
	}
	return posted, nil
}

// checkAvailable suma lo pedido por (producto, tienda) y compara contra la existencia bloqueada.
func checkAvailable(ctx context.Context, uow ports.UnitOfWork, items []entity.OrderItem) error {
	type key struct{ product, store string }
	need := make(map[key]decimal.Decimal, len(items))
	keys := make([]key, 0, len(items))
	for _, it := range items {
		k := key{it.ProductID, it.StoreID}
		if _, ok := need[k]; !ok {
			keys = append(keys, k)
		}
		need[k] = need[k].Add(it.Quantity)
	}

	var shortages []domain.StockShortage
	for _, k := range keys {
		inv, err := uow.Inventory.GetForUpdate(ctx, k.product, k.store)
		if err != nil {
			return err
		}
		if inv.Quantity.LessThan(need[k]) {
			shortages = append(shortages, domain.StockShortage{
				ProductID: k.product, StoreID: k.store,
				Requested: need[k], Available: inv.Quantity,
			})
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}
	return nil
}

func totalOnHand(ctx context.Context, uow ports.UnitOfWork, productID string) (decimal.Decimal, error) {
	rows, _, err := uow.Inventory.List(ctx, repository.InventoryFilter{ProductID: productID}, 0, 0)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		if r.Quantity.IsPositive() {
			total = total.Add(r.Quantity)
		}
	}
	return total, nil
}

// validateParty compras exigen proveedor existente; ventas aceptan cliente opcional.
func (uc *UseCase) validateParty(ctx context.Context, in dto.OrderRequest) error {
	switch in.Type {
	case entity.OrderTypePurchase:
		if in.SupplierID == "" {
			return fmt.Errorf("%w: la compra requiere proveedor", domain.ErrInvalidInput)
		}
		s, err := uc.suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}
	case entity.OrderTypeSale:
		if in.CustomerID == "" {
			return nil
		}
		c, err := uc.customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
	default:
		return fmt.Errorf("%w: tipo de orden %q", domain.ErrInvalidInput, in.Type)
	}
	return nil
}

// applyRequest valida líneas contra productos y tiendas y recalcula totales.
func applyRequest(ctx context.Context, uow ports.UnitOfWork, actor ports.Actor, o *entity.Order, in dto.OrderRequest, now time.Time) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidInput)
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() || it.UnitCost.IsNegative() || it.Discount.IsNegative() {
			return fmt.Errorf("%w: línea %d: valores inválidos", domain.ErrInvalidInput, i+1)
		}
		if it.Discount.GreaterThan(it.Quantity.Mul(it.UnitPrice)) {
			return fmt.Errorf("%w: línea %d: el descuento supera el valor de la línea", domain.ErrInvalidInput, i+1)
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
		s, err := uow.Stores.GetByID(ctx, it.StoreID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, it.StoreID)
		}
		if !s.IsActive {
			return fmt.Errorf("%w: la tienda %s está inactiva", domain.ErrInvalidInput, s.Code)
		}

		cost := it.UnitCost
		if o.Type == entity.OrderTypePurchase && cost.IsZero() {
			cost = it.UnitPrice
		}
		if o.Type == entity.OrderTypeSale {
			cost = p.Cost
		}
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			StoreID:   it.StoreID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UnitCost:  cost,
			Discount:  it.Discount,
		})
	}

	o.CustomerID = ""
	o.SupplierID = ""
	if o.IsPurchase() {
		o.SupplierID = in.SupplierID
	} else {
		o.CustomerID = in.CustomerID
	}
	o.Notes = strings.TrimSpace(in.Notes)
	o.OrderDate = now
	if in.OrderDate != nil {
		o.OrderDate = *in.OrderDate
	}
	o.Items = items
	o.RecalculateTotals()
	return nil
}

func numberPrefix(orderType string) string {
	if orderType == entity.OrderTypePurchase {
		return "OC"
	}
	return "OV"
}

func toResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		Type:        o.Type,
		Status:      o.Status,
		CustomerID:  o.CustomerID,
		SupplierID:  o.SupplierID,
		OrderDate:   o.OrderDate,
		Notes:       o.Notes,
		Subtotal:    o.Subtotal,
		Discount:    o.Discount,
		Total:       o.Total,
		CreatedBy:   o.CreatedBy,
		CompletedAt: o.CompletedAt,
		CancelledAt: o.CancelledAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			StoreID:   it.StoreID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UnitCost:  it.UnitCost,
			Discount:  it.Discount,
			LineTotal: it.LineTotal(),
		})
	}
	return resp
}
