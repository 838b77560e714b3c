package storefront

import "github.com/angelmondragon/coffee-storefront/internal/cart"

// EventKind names a committed state change.
type EventKind string

const (
	EventItemAdded       EventKind = "cart.item_added"
	EventItemIncremented EventKind = "cart.item_incremented"
	EventItemDecremented EventKind = "cart.item_decremented"
	EventItemRemoved     EventKind = "cart.item_removed"
	EventOrderPlaced     EventKind = "order.placed"
)

// op is the metrics label for a cart mutation.
func (k EventKind) op() string {
	switch k {
	case EventItemAdded:
		return "add"
	case EventItemIncremented:
		return "increment"
	case EventItemDecremented:
		return "decrement"
	case EventItemRemoved:
		return "remove"
	case EventOrderPlaced:
		return "checkout"
	}
	return ""
}

// Event is delivered to listeners after a change is persisted.
// Cart is the cart contents after the change; OrderID is set for EventOrderPlaced.
type Event struct {
	Kind    EventKind
	ItemID  string
	Cart    []cart.Item
	OrderID int
}

// Listener observes committed changes. Listeners run synchronously on the
// committing goroutine, in commit order, with no service lock held: they may
// call read methods and unsubscribe, but must not call mutating Service
// methods, which would wait for their own delivery.
type Listener func(Event)
