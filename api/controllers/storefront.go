package controllers

import (
	"context"

	"github.com/angelmondragon/coffee-storefront/internal/catalog"
	"github.com/angelmondragon/coffee-storefront/internal/checkout"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	"github.com/angelmondragon/coffee-storefront/internal/pricing"
)

// Storefront is the session state the HTTP handlers drive.
type Storefront interface {
	AddItem(ctx context.Context, id string, quantity int) error
	IncrementItemQuantity(ctx context.Context, id string) error
	DecrementItemQuantity(ctx context.Context, id string) error
	RemoveItem(ctx context.Context, id string) error
	Quote(ctx context.Context) (pricing.Summary, error)
	Checkout(ctx context.Context, form checkout.Form) (orders.Order, error)
	FindOrder(id int) (orders.Order, bool)
	Orders() []orders.Order
	Catalog() *catalog.Catalog
	Ping(ctx context.Context) error
}
