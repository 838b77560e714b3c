package storefront

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/internal/catalog"
	"github.com/angelmondragon/coffee-storefront/internal/checkout"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	"github.com/angelmondragon/coffee-storefront/internal/pricing"
	"github.com/angelmondragon/coffee-storefront/internal/snapshot"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
	"github.com/angelmondragon/coffee-storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Options wires a Service.
type Options struct {
	Catalog  *catalog.Catalog
	Store    snapshot.Store
	Shipping decimal.Decimal
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

// Service owns the session cart and order history. Every exported method is a
// single critical section: mutate, persist, then notify listeners.
type Service struct {
	mu     sync.Mutex
	cart   *cart.Cart
	orders *orders.Repository

	listeners    map[int]Listener
	nextListener int
	// committed numbers each persisted change; set under mu.
	committed uint64

	// delivered trails committed; guarded by notifyMu.
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64

	catalog   *catalog.Catalog
	store     snapshot.Store
	shipping  decimal.Decimal
	processor *checkout.Processor
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
}

// New builds a service with an empty cart and order history. Call Restore to
// adopt a persisted session.
func New(opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if opts.Shipping.IsNegative() {
		return nil, fmt.Errorf("shipping fee must not be negative")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	svc := &Service{
		cart:      cart.New(nil),
		orders:    &orders.Repository{},
		listeners: map[int]Listener{},
		catalog:   opts.Catalog,
		store:     opts.Store,
		shipping:  opts.Shipping,
		processor: checkout.NewProcessor(),
		logg:      logg,
		metrics:   opts.Metrics,
	}
	svc.notifyCond = sync.NewCond(&svc.notifyMu)
	return svc, nil
}

// Restore replaces the in-memory state with the persisted snapshot, if any.
// A snapshot that fails integrity checks is a CodeStateConflict error.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not load the storefront state")
	}
	if snap == nil {
		s.logg.Info(s.logg.WithField(ctx, "backend", s.store.Name()), "snapshot.missing")
		return nil
	}
	c, repo, err := snap.Restore()
	if err != nil {
		return err
	}
	for _, item := range c.Items() {
		if !s.catalog.Has(item.ID) {
			s.logg.Warn(s.logg.WithField(ctx, "item_id", item.ID), "snapshot.unknown_item")
		}
	}
	s.cart = c
	s.orders = repo
	s.metrics.SetOrdersPlaced(repo.Len())

	ctx = s.logg.WithFields(ctx, map[string]any{
		"backend":     s.store.Name(),
		"cart_lines":  c.Len(),
		"order_count": repo.Len(),
	})
	s.logg.Info(ctx, "snapshot.restored")
	return nil
}

// AddItem adds quantity units of a catalog coffee to the cart.
func (s *Service) AddItem(ctx context.Context, id string, quantity int) error {
	id = strings.TrimSpace(id)
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]string{"quantity": "must be at least 1"})
	}
	if !s.catalog.Has(id) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "coffee not found")
	}
	_, err := s.apply(ctx, EventItemAdded, id, func() (bool, int, error) {
		return s.cart.Add(id, quantity), 0, nil
	})
	return err
}

// IncrementItemQuantity adds one unit of id; absent ids are ignored.
func (s *Service) IncrementItemQuantity(ctx context.Context, id string) error {
	_, err := s.apply(ctx, EventItemIncremented, id, func() (bool, int, error) {
		return s.cart.Increment(id), 0, nil
	})
	return err
}

// DecrementItemQuantity removes one unit of id, keeping at least one.
func (s *Service) DecrementItemQuantity(ctx context.Context, id string) error {
	_, err := s.apply(ctx, EventItemDecremented, id, func() (bool, int, error) {
		return s.cart.Decrement(id), 0, nil
	})
	return err
}

// RemoveItem drops id from the cart.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	_, err := s.apply(ctx, EventItemRemoved, id, func() (bool, int, error) {
		return s.cart.Remove(id), 0, nil
	})
	return err
}

// Checkout converts the cart into an order. The cart is cleared only when the
// order is persisted.
func (s *Service) Checkout(ctx context.Context, form checkout.Form) (orders.Order, error) {
	var placed orders.Order
	_, err := s.apply(ctx, EventOrderPlaced, "", func() (bool, int, error) {
		order, err := s.processor.Execute(s.cart, s.orders, form)
		if err != nil {
			return false, 0, err
		}
		placed = order
		return true, order.ID, nil
	})
	switch {
	case err == nil:
		s.metrics.IncCheckout(metrics.OutcomePlaced)
		ctx = s.logg.WithOrderID(ctx, placed.ID)
		ctx = s.logg.WithFields(ctx, map[string]any{
			"payment_method": placed.PaymentMethod.String(),
			"lines":          len(placed.Items),
		})
		s.logg.Info(ctx, "checkout.completed")
		return placed, nil
	case pkgerrors.IsCode(err, pkgerrors.CodeDependency):
		s.metrics.IncCheckout(metrics.OutcomeFailed)
	case isEmptyCart(err):
		s.metrics.IncCheckout(metrics.OutcomeEmptyCart)
	default:
		s.metrics.IncCheckout(metrics.OutcomeInvalid)
	}
	return orders.Order{}, err
}

func isEmptyCart(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeValidation && typed.Message() == checkout.EmptyCartMessage
}

// Cart returns the current cart lines.
func (s *Service) Cart() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// Quote prices the current cart. A cart line missing from the catalog is an
// internal error and is logged with a stack.
func (s *Service) Quote(ctx context.Context) (pricing.Summary, error) {
	s.mu.Lock()
	items := s.cart.Items()
	s.mu.Unlock()

	summary, err := pricing.Quote(items, s.catalog, s.shipping)
	if err != nil {
		s.logg.Error(ctx, "cart.quote_failed", err)
		return pricing.Summary{}, err
	}
	return summary, nil
}

// FindOrder looks up an order by id. A miss is not an error.
func (s *Service) FindOrder(id int) (orders.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.FindByID(id)
}

// Orders returns the order history, oldest first.
func (s *Service) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.List()
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) Shipping() decimal.Decimal {
	return s.shipping
}

// Ping checks the persistence backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Subscribe registers fn for committed changes and returns its unsubscribe func.
func (s *Service) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// apply runs change under the lock. Unchanged state is neither persisted nor
// announced. A failed save restores the previous cart and order history.
func (s *Service) apply(ctx context.Context, kind EventKind, itemID string, change func() (bool, int, error)) (bool, error) {
	s.mu.Lock()
	prevCart := s.cart.Items()
	prevOrders := s.orders.Len()

	changed, orderID, err := change()
	if err != nil || !changed {
		s.mu.Unlock()
		return false, err
	}

	if err := s.persist(ctx); err != nil {
		s.cart = cart.New(prevCart)
		s.orders.Truncate(prevOrders)
		s.mu.Unlock()
		s.logg.Error(s.logg.WithField(ctx, "event", string(kind)), "snapshot.save_failed", err)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not save the storefront state")
	}

	s.committed++
	seq := s.committed
	evt := Event{Kind: kind, ItemID: itemID, Cart: s.cart.Items(), OrderID: orderID}
	listeners := s.listenersLocked()
	s.metrics.IncCartMutation(kind.op())
	s.metrics.SetOrdersPlaced(s.orders.Len())
	s.mu.Unlock()

	s.deliver(seq, evt, listeners)
	return true, nil
}

// deliver runs listeners for commit seq once every earlier commit has been
// delivered. No lock is held while listeners run, so they may read the service.
func (s *Service) deliver(seq uint64, evt Event, listeners []Listener) {
	s.notifyMu.Lock()
	for s.delivered+1 != seq {
		s.notifyCond.Wait()
	}
	s.notifyMu.Unlock()

	defer func() {
		s.notifyMu.Lock()
		s.delivered = seq
		s.notifyCond.Broadcast()
		s.notifyMu.Unlock()
	}()
	for _, fn := range listeners {
		fn(evt)
	}
}

func (s *Service) persist(ctx context.Context) error {
	started := time.Now()
	err := s.store.Save(ctx, snapshot.Capture(s.cart, s.orders))
	s.metrics.ObserveSnapshotSave(s.store.Name(), time.Since(started), err)
	return err
}

// listenersLocked returns listeners in subscription order. Callers hold mu.
func (s *Service) listenersLocked() []Listener {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
