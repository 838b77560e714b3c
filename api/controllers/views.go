package controllers

import (
	"github.com/angelmondragon/coffee-storefront/internal/catalog"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	"github.com/angelmondragon/coffee-storefront/internal/pricing"
)

// DeliveryEstimate is the delivery window shown on the order confirmation.
const DeliveryEstimate = "20 min - 30 min"

type ProductView struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
}

func newProductView(p catalog.Product) ProductView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        tags,
		Price:       pricing.Format(p.Price),
		Image:       p.Image,
	}
}

type CartLineView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalItems int            `json:"totalItems"`
	Subtotal   string         `json:"subtotal"`
	Shipping   string         `json:"shipping"`
	Total      string         `json:"total"`
}

func newCartView(summary pricing.Summary) CartView {
	view := CartView{
		Items:    make([]CartLineView, 0, len(summary.Lines)),
		Subtotal: pricing.Format(summary.Subtotal),
		Shipping: pricing.Format(summary.Shipping),
		Total:    pricing.Format(summary.Total),
	}
	for _, line := range summary.Lines {
		view.TotalItems += line.Quantity
		view.Items = append(view.Items, CartLineView{
			ID:        line.Product.ID,
			Title:     line.Product.Title,
			Image:     line.Product.Image,
			UnitPrice: pricing.Format(line.Product.Price),
			Quantity:  line.Quantity,
			LineTotal: pricing.Format(line.LineTotal),
		})
	}
	return view
}

type OrderItemView struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type OrderView struct {
	ID               int             `json:"id"`
	Items            []OrderItemView `json:"items"`
	Address          orders.Address  `json:"address"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentLabel     string          `json:"paymentLabel"`
	DeliveryEstimate string          `json:"deliveryEstimate"`
}

func newOrderView(o orders.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{ID: item.ID, Quantity: item.Quantity})
	}
	return OrderView{
		ID:               o.ID,
		Items:            items,
		Address:          o.Address,
		PaymentMethod:    o.PaymentMethod.String(),
		PaymentLabel:     o.PaymentMethod.Label(),
		DeliveryEstimate: DeliveryEstimate,
	}
}

// OrdersPage is one page of order history, newest first.
type OrdersPage struct {
	Orders     []OrderView `json:"orders"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

// OrderLookupView is the confirmation payload; Found is false for unknown ids.
type OrderLookupView struct {
	Found bool       `json:"found"`
	Order *OrderView `json:"order,omitempty"`
}
