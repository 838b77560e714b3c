package orders

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
)

// Repository is the append-only order history. Ids are unique and strictly increasing.
// It is not safe for concurrent use.
type Repository struct {
	orders []Order
}

// NewRepository seeds a repository with previously persisted orders.
func NewRepository(existing []Order) (*Repository, error) {
	r := &Repository{}
	for _, o := range existing {
		if err := r.Append(o); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Append stores a copy of order. The id must be greater than the last stored id.
func (r *Repository) Append(order Order) error {
	if order.ID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	if order.ID <= r.LastID() {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("order id %d is not greater than last id %d", order.ID, r.LastID()))
	}
	if len(order.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("order item %q has quantity %d", item.ID, item.Quantity))
		}
	}
	r.orders = append(r.orders, order.Clone())
	return nil
}

// FindByID returns the order with id. A miss is reported through ok, not as an error.
func (r *Repository) FindByID(id int) (Order, bool) {
	for _, o := range r.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return Order{}, false
}

// List returns copies of all orders, oldest first.
func (r *Repository) List() []Order {
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (r *Repository) Len() int {
	return len(r.orders)
}

// LastID returns the id of the newest order, or 0 when empty.
func (r *Repository) LastID() int {
	if len(r.orders) == 0 {
		return 0
	}
	return r.orders[len(r.orders)-1].ID
}

// NextID is the id the next checkout should use.
func (r *Repository) NextID() int {
	return r.LastID() + 1
}

// Truncate drops orders past n. It exists for rolling back an uncommitted append.
func (r *Repository) Truncate(n int) {
	if n < 0 || n >= len(r.orders) {
		return
	}
	r.orders = r.orders[:n]
}
