package orders

import (
	"github.com/angelmondragon/coffee-storefront/internal/cart"
	"github.com/angelmondragon/coffee-storefront/pkg/enums"
)

// Address is the delivery address captured at checkout. CEP holds ASCII digits only.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	FullAddress  string `json:"fullAddress,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID            int                 `json:"id"`
	Items         []cart.Item         `json:"items"`
	Address       Address             `json:"address"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
}

// Clone returns a copy that shares no item storage with o.
func (o Order) Clone() Order {
	o.Items = cart.Clone(o.Items)
	return o
}
