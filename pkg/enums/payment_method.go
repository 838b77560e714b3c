package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a customer settles an order on delivery.
type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCash   PaymentMethod = "cash"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCredit,
	PaymentMethodDebit,
	PaymentMethodCash,
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCredit: "Cartão de crédito",
	PaymentMethodDebit:  "Cartão de débito",
	PaymentMethodCash:   "Dinheiro",
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the customer-facing name shown on the order confirmation.
func (p PaymentMethod) Label() string {
	return paymentMethodLabels[p]
}

// PaymentMethodValues lists the accepted raw values, in display order.
func PaymentMethodValues() []string {
	out := make([]string, len(validPaymentMethods))
	for i, candidate := range validPaymentMethods {
		out[i] = string(candidate)
	}
	return out
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
