package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

var ErrDuplicateCheckout = errors.New("checkout already in progress")

const idempotencyScope = "checkout"

type Options struct {
	Store       KVStore
	Events      EventPublisher   // optional
	Idempotency IdempotencyStore // optional
	Logger      *slog.Logger
	IDs         IDGenerator
	Clock       Clock
	Location    *time.Location
	UnitPolicy  UnitPolicy

	WalkInLabel       string
	NoticeTTL         time.Duration
	CheckoutNoticeTTL time.Duration
	FoldPreOrderCase  bool
}

// POS is the single writer over State. Every command takes the lock, mutates,
// then writes the touched collections through to the store.
type POS struct {
	mu    sync.Mutex
	state *State
	opts  Options
	log   *slog.Logger
}

func NewPOS(ctx context.Context, opts Options) (*POS, error) {
	if opts.Store == nil {
		return nil, errors.New("pos: store required")
	}
	if opts.Events == nil {
		opts.Events = noopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.IDs == nil {
		opts.IDs = uuid.NewString
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.UnitPolicy == nil {
		opts.UnitPolicy = PerUnit{}
	}
	if opts.WalkInLabel == "" {
		opts.WalkInLabel = DefaultWalkInLabel
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 2 * time.Second
	}
	if opts.CheckoutNoticeTTL <= 0 {
		opts.CheckoutNoticeTTL = 3 * time.Second
	}

	st, err := LoadState(ctx, opts.Store, opts.IDs, opts.Location)
	if err != nil {
		return nil, err
	}
	p := &POS{state: st, opts: opts, log: opts.Logger}
	if keys := st.Upgraded(); len(keys) > 0 {
		p.persist(ctx, keys...)
		p.log.Info("legacy records upgraded", "keys", keys)
	}
	p.log.Info("pos state loaded",
		"products", len(st.Products),
		"orders", len(st.Orders),
		"preorders", len(st.PreOrders),
		"customer_count", st.CustomerCount,
		"unit_policy", opts.UnitPolicy.Name(),
	)
	return p, nil
}

func (p *POS) now() time.Time { return p.opts.Clock().In(p.opts.Location) }

// Today is the raw date the ledger would stamp right now.
func (p *POS) Today() string { return p.now().Format(RawDateLayout) }

// persist is best-effort: in-memory state stays authoritative when a write fails.
func (p *POS) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		val, err := EncodeKey(p.state, key)
		if err == nil {
			err = p.opts.Store.Set(ctx, key, val)
		}
		if err != nil {
			p.log.Error("persist failed", "key", key, "err", err)
		}
	}
}

func (p *POS) publish(ctx context.Context, ev OrderEvent) {
	ev.At = p.opts.Clock()
	if err := p.opts.Events.Publish(ctx, ev); err != nil {
		p.log.Warn("publish order event failed", "type", ev.Type, "order_id", ev.OrderID, "err", err)
	}
}

func (p *POS) fail(err error) Notice { return errorNotice(p.opts.NoticeTTL, err) }

func (p *POS) info(format string, a ...any) Notice {
	return infoNotice(p.opts.NoticeTTL, fmt.Sprintf(format, a...))
}

// --- catalog ---

func (p *POS) AddProduct(ctx context.Context, in AddProductInput) (Outcome[domain.Product], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prod, err := p.state.AddProduct(p.opts.IDs(), in)
	if err != nil {
		return Outcome[domain.Product]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyProducts)
	return Outcome[domain.Product]{Value: prod, Notice: p.info("Added %s (%s)", prod.Name, prod.Unit)}, nil
}

// UpdateProduct returns domain.ErrNotFound for a stale id; nothing changes.
func (p *POS) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Outcome[domain.Product], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prod, err := p.state.UpdateProduct(id, patch)
	if err != nil {
		return Outcome[domain.Product]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyProducts)
	return Outcome[domain.Product]{Value: prod, Notice: p.info("Updated %s", prod.Name)}, nil
}

func (p *POS) DeleteProduct(ctx context.Context, id string) Outcome[bool] {
	p.mu.Lock()
	defer p.mu.Unlock()

	prod, ok := p.state.FindProduct(id)
	if !ok || !p.state.DeleteProduct(id) {
		return Outcome[bool]{}
	}
	p.persist(ctx, KeyProducts)
	return Outcome[bool]{Value: true, Notice: p.info("%s removed", prod.Name)}
}

func (p *POS) ListProducts(f ProductFilter) []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.ListProducts(f)
}

func (p *POS) GetProduct(id string) (domain.Product, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.FindProduct(id)
}

func (p *POS) Categories() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Categories()
}

func (p *POS) ResetInventory(ctx context.Context) Outcome[struct{}] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.ResetInventory()
	p.persist(ctx, KeyProducts, KeyCart)
	return Outcome[struct{}]{Notice: p.info("Inventory reset")}
}

// --- sale cart ---

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

func (p *POS) Cart() CartView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cartView()
}

func (p *POS) cartView() CartView {
	return CartView{Lines: nonNil(domain.CloneLines(p.state.Cart)), Total: p.state.CartTotal()}
}

func (p *POS) AddLine(ctx context.Context, in AddLineInput) (Outcome[domain.CartLine], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line, err := p.state.AddLine(p.opts.IDs(), in, p.opts.UnitPolicy)
	if err != nil {
		return Outcome[domain.CartLine]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyCart)
	return Outcome[domain.CartLine]{Value: line, Notice: p.info("Added %s %s %s", line.Quantity.String(), line.Unit, line.Name)}, nil
}

func (p *POS) RemoveLine(ctx context.Context, lineID string) Outcome[bool] {
	p.mu.Lock()
	defer p.mu.Unlock()

	var name string
	for _, l := range p.state.Cart {
		if l.ID == lineID {
			name = l.Name
		}
	}
	if !p.state.RemoveLine(lineID) {
		return Outcome[bool]{}
	}
	p.persist(ctx, KeyCart)
	return Outcome[bool]{Value: true, Notice: p.info("%s removed", name)}
}

func (p *POS) ClearCart(ctx context.Context) Outcome[struct{}] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.ClearCart()
	p.persist(ctx, KeyCart)
	return Outcome[struct{}]{Notice: p.info("Cart cleared")}
}

// --- ledger ---

// CompleteOrder checks out the sale cart. With an idempotency key, a retry of
// a finished checkout returns the original order instead of creating another.
func (p *POS) CompleteOrder(ctx context.Context, in CheckoutInput) (Outcome[domain.Order], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idem := p.opts.Idempotency
	if idem != nil && in.IdempotencyKey != "" {
		if id, ok, _ := idem.Recall(ctx, idempotencyScope, in.IdempotencyKey); ok {
			if o, found := p.state.FindOrder(id); found {
				return Outcome[domain.Order]{Value: o, Replayed: true}, nil
			}
			return Outcome[domain.Order]{Notice: p.fail(ErrDuplicateCheckout)}, ErrDuplicateCheckout
		}
		locked, err := idem.TryLock(ctx, idempotencyScope, in.IdempotencyKey)
		if err != nil {
			return Outcome[domain.Order]{}, err
		}
		if !locked {
			return Outcome[domain.Order]{Notice: p.fail(ErrDuplicateCheckout)}, ErrDuplicateCheckout
		}
	}

	o, err := p.state.CompleteOrder(p.opts.IDs(), p.now(), in, p.opts.WalkInLabel)
	if err != nil {
		if idem != nil && in.IdempotencyKey != "" {
			if rerr := idem.Release(ctx, idempotencyScope, in.IdempotencyKey); rerr != nil {
				p.log.Warn("release checkout key failed", "key", in.IdempotencyKey, "err", rerr)
			}
		}
		return Outcome[domain.Order]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyOrders, KeyCart, KeyCustomerCount)

	if idem != nil && in.IdempotencyKey != "" {
		if err := idem.Remember(ctx, idempotencyScope, in.IdempotencyKey, o.ID); err != nil {
			p.log.Warn("remember checkout key failed", "order_id", o.ID, "err", err)
		}
	}
	p.publish(ctx, OrderEvent{
		Type:     EventOrderCompleted,
		OrderID:  o.ID,
		Customer: o.Customer,
		Address:  o.Address,
		Status:   string(o.Status),
		Total:    o.Total.StringFixed(2),
	})
	p.log.Info("order completed", "order_id", o.ID, "customer", o.Customer, "total", o.Total.StringFixed(2), "lines", len(o.Items))

	n := infoNotice(p.opts.CheckoutNoticeTTL, fmt.Sprintf("Order completed for %s ₱%s", o.Customer, o.Total.StringFixed(2)))
	return Outcome[domain.Order]{Value: o, Notice: n}, nil
}

func (p *POS) Orders() []domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Order, 0, len(p.state.Orders))
	for _, o := range p.state.Orders {
		out = append(out, o.Clone())
	}
	return out
}

func (p *POS) GetOrder(id string) (domain.Order, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.FindOrder(id)
}

func (p *POS) Receipt(id string) (Receipt, bool) {
	o, ok := p.GetOrder(id)
	if !ok {
		return Receipt{}, false
	}
	return NewReceipt(o), true
}

func (p *POS) DeleteOrder(ctx context.Context, id string) Outcome[bool] {
	p.mu.Lock()
	defer p.mu.Unlock()

	o, ok := p.state.FindOrder(id)
	if !ok || !p.state.DeleteOrder(id) {
		return Outcome[bool]{}
	}
	p.persist(ctx, KeyOrders)
	p.publish(ctx, OrderEvent{Type: EventOrderDeleted, OrderID: id})
	return Outcome[bool]{Value: true, Notice: p.info("Removed completed order for %s", o.Customer)}
}

func (p *POS) ToggleStatus(ctx context.Context, id string) (Outcome[domain.Order], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	o, ok := p.state.ToggleStatus(id)
	if !ok {
		return Outcome[domain.Order]{}, false
	}
	p.persist(ctx, KeyOrders)
	p.publish(ctx, OrderEvent{Type: EventOrderStatusChanged, OrderID: id, Status: string(o.Status)})
	return Outcome[domain.Order]{Value: o, Notice: p.info("%s marked %s", o.Customer, o.Status)}, true
}

// SetStatus applies an explicit status from the dispatch feed. Unknown ids
// and unchanged statuses are no-ops.
func (p *POS) SetStatus(ctx context.Context, id string, st domain.Status) (domain.Order, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	o, found, changed := p.state.SetStatus(id, st)
	if !found {
		return domain.Order{}, false
	}
	if changed {
		p.persist(ctx, KeyOrders)
		p.publish(ctx, OrderEvent{Type: EventOrderStatusChanged, OrderID: id, Status: string(st)})
	}
	return o, true
}

type DailySummary struct {
	Date    string          `json:"date"`
	Orders  []domain.Order  `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DispatchList is the delivery worklist for one day: pending first.
func (p *POS) DispatchList(rawDate string) DailySummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return DailySummary{
		Date:    rawDate,
		Orders:  nonNil(SortForDispatch(FilterByDate(p.state.Orders, rawDate))),
		Revenue: DailyRevenue(p.state.Orders, rawDate),
	}
}

func (p *POS) DailyRevenue(rawDate string) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return DailyRevenue(p.state.Orders, rawDate)
}

// --- manifest ---

type Manifest struct {
	Rows  []ManifestRow   `json:"rows"`
	Total decimal.Decimal `json:"total"`
}

func (p *POS) BuildManifest(orderIDs []string) Manifest {
	p.mu.Lock()
	defer p.mu.Unlock()
	rows := BuildManifest(p.state.SelectOrders(orderIDs))
	return Manifest{Rows: rows, Total: ManifestTotal(rows)}
}

// --- pre-orders ---

type PreOrderCartView struct {
	Lines []domain.PreOrderLine `json:"lines"`
}

func (p *POS) PreOrderCart() PreOrderCartView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PreOrderCartView{Lines: nonNil(domain.CloneLines(p.state.PreOrderCart))}
}

func (p *POS) AddPreOrderLine(ctx context.Context, in AddLineInput) (Outcome[domain.PreOrderLine], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line, err := p.state.AddPreOrderLine(p.opts.IDs(), in)
	if err != nil {
		return Outcome[domain.PreOrderLine]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyPreOrderCart)
	return Outcome[domain.PreOrderLine]{Value: line, Notice: p.info("Added %s %s %s", line.Quantity.String(), line.Unit, line.Name)}, nil
}

func (p *POS) RemovePreOrderLine(ctx context.Context, lineID string) Outcome[bool] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.RemovePreOrderLine(lineID) {
		return Outcome[bool]{}
	}
	p.persist(ctx, KeyPreOrderCart)
	return Outcome[bool]{Value: true, Notice: p.info("Item removed")}
}

func (p *POS) ClearPreOrderCart(ctx context.Context) Outcome[struct{}] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.ClearPreOrderCart()
	p.persist(ctx, KeyPreOrderCart)
	return Outcome[struct{}]{Notice: p.info("Pre-order cleared")}
}

func (p *POS) SavePreOrder(ctx context.Context, customer string) (Outcome[domain.PreOrder], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	po, err := p.state.SavePreOrder(p.opts.IDs(), p.now(), customer)
	if err != nil {
		return Outcome[domain.PreOrder]{Notice: p.fail(err)}, err
	}
	p.persist(ctx, KeyPreOrders, KeyPreOrderCart)
	return Outcome[domain.PreOrder]{Value: po, Notice: p.info("Pre-order saved for %s", po.Customer)}, nil
}

func (p *POS) PreOrders() []domain.PreOrder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return nonNil(append([]domain.PreOrder(nil), p.state.PreOrders...))
}

func (p *POS) ShoppingList() []ShoppingListRow {
	p.mu.Lock()
	defer p.mu.Unlock()
	return nonNil(Aggregate(p.state.PreOrders, p.opts.FoldPreOrderCase))
}

func (p *POS) ClearPreOrders(ctx context.Context) Outcome[struct{}] {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.ClearPreOrders()
	p.persist(ctx, KeyPreOrders)
	return Outcome[struct{}]{Notice: p.info("All pre-orders cleared")}
}
