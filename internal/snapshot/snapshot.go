package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"go.uber.org/multierr"
)

// CurrentVersion is the document version written by Encode.
const CurrentVersion = 1

// Snapshot is the persisted form of one session: the cart and its order history.
type Snapshot struct {
	Version int            `json:"version"`
	Cart    []cart.Item    `json:"cart"`
	Orders  []orders.Order `json:"orders"`
}

// Store persists a single session snapshot.
type Store interface {
	// Load returns nil without error when nothing was saved yet.
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Ping(ctx context.Context) error
	// Name labels the backend in logs and metrics.
	Name() string
}

// Capture copies the current cart and order history.
func Capture(c *cart.Cart, repo *orders.Repository) Snapshot {
	return Snapshot{
		Version: CurrentVersion,
		Cart:    c.Items(),
		Orders:  repo.List(),
	}
}

// Validate reports every integrity problem found in the snapshot.
func (s Snapshot) Validate() error {
	var errs error
	if s.Version != CurrentVersion {
		errs = multierr.Append(errs, fmt.Errorf("unsupported snapshot version %d", s.Version))
	}

	seen := make(map[string]struct{}, len(s.Cart))
	for i, item := range s.Cart {
		if item.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("cart[%d]: blank id", i))
		}
		if _, dup := seen[item.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("cart[%d]: duplicate id %q", i, item.ID))
		}
		seen[item.ID] = struct{}{}
		if item.Quantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("cart[%d]: quantity %d below 1", i, item.Quantity))
		}
	}

	lastID := 0
	for i, o := range s.Orders {
		if o.ID <= lastID {
			errs = multierr.Append(errs, fmt.Errorf("orders[%d]: id %d not greater than %d", i, o.ID, lastID))
		}
		lastID = o.ID
		if len(o.Items) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("orders[%d]: no items", i))
		}
		for j, item := range o.Items {
			if item.Quantity < 1 {
				errs = multierr.Append(errs, fmt.Errorf("orders[%d].items[%d]: quantity %d below 1", i, j, item.Quantity))
			}
		}
		if !o.PaymentMethod.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("orders[%d]: invalid payment method %q", i, o.PaymentMethod))
		}
	}
	return errs
}

// Restore validates the snapshot and rebuilds the cart and order history from it.
func (s Snapshot) Restore() (*cart.Cart, *orders.Repository, error) {
	if err := s.Validate(); err != nil {
		problems := make([]string, 0)
		for _, e := range multierr.Errors(err) {
			problems = append(problems, e.Error())
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "snapshot failed integrity checks").
			WithDetails(map[string]any{"problems": problems})
	}
	repo, err := orders.NewRepository(s.Orders)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "snapshot order history rejected")
	}
	return cart.New(s.Cart), repo, nil
}

// Encode serializes the snapshot as JSON.
func Encode(s Snapshot) ([]byte, error) {
	if s.Cart == nil {
		s.Cart = []cart.Item{}
	}
	if s.Orders == nil {
		s.Orders = []orders.Order{}
	}
	return json.Marshal(s)
}

// Decode parses a snapshot document. Malformed input is a state conflict.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "snapshot is not valid json")
	}
	return s, nil
}
