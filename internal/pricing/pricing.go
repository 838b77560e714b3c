package pricing

import (
	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultShipping is the flat delivery fee applied to every cart.
var DefaultShipping = decimal.RequireFromString("3.50")

// Line is a cart item enriched with catalog data.
type Line struct {
	Product   catalog.Product
	Quantity  int
	LineTotal decimal.Decimal
}

// Summary is the priced view of a cart. It is computed on read and never stored.
type Summary struct {
	Lines    []Line
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Quote prices items against c. A catalog miss is an internal error: carts only
// ever hold ids accepted from the catalog.
func Quote(items []cart.Item, c *catalog.Catalog, shipping decimal.Decimal) (Summary, error) {
	summary := Summary{
		Lines:    make([]Line, 0, len(items)),
		Subtotal: decimal.Zero,
		Shipping: shipping,
	}
	for _, item := range items {
		product, err := c.Lookup(item.ID)
		if err != nil {
			return Summary{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Invalid coffee.")
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Lines = append(summary.Lines, Line{
			Product:   product,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
	}
	summary.Total = summary.Subtotal.Add(shipping)
	return summary, nil
}

// Format renders money with two fraction digits.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
