package checkout

import (
	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
)

// EmptyCartMessage is the alert shown when checking out with nothing in the cart.
const EmptyCartMessage = "You need to have at least one item in the cart"

// Processor turns the current cart into an order.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Execute appends a new order built from c and form to repo, then clears c.
// On error neither c nor repo is modified. Callers sharing c and repo across
// goroutines must hold their own lock around the call.
func (p *Processor) Execute(c *cart.Cart, repo *orders.Repository, form Form) (orders.Order, error) {
	if c == nil || repo == nil {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeInternal, "checkout requires a cart and an order repository")
	}
	if c.IsEmpty() {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeValidation, EmptyCartMessage)
	}
	if _, fieldErrs := ValidateForm(form.Raw()); len(fieldErrs) > 0 {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout form").WithDetails(fieldErrs)
	}

	order := orders.Order{
		ID:            repo.NextID(),
		Items:         c.Items(),
		Address:       form.Address,
		PaymentMethod: form.PaymentMethod,
	}
	if err := repo.Append(order); err != nil {
		return orders.Order{}, err
	}
	c.Clear()
	return order.Clone(), nil
}
