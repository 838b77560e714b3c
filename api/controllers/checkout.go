package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/angelmondragon/coffee-storefront/api/responses"
	"github.com/angelmondragon/coffee-storefront/api/validators"
	"github.com/angelmondragon/coffee-storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
)

// digits accepts a JSON string or number and keeps its literal text, so
// numeric CEPs reach the form validator unchanged.
type digits string

func (d *digits) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = digits(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = digits(n.String())
	return nil
}

type CheckoutRequest struct {
	CEP           digits `json:"cep"`
	Street        string `json:"street"`
	Number        digits `json:"number"`
	FullAddress   string `json:"fullAddress"`
	Neighborhood  string `json:"neighborhood"`
	City          string `json:"city"`
	State         string `json:"state"`
	PaymentMethod string `json:"paymentMethod"`
}

func (c CheckoutRequest) raw() checkout.RawForm {
	return checkout.RawForm{
		CEP:           string(c.CEP),
		Street:        c.Street,
		Number:        string(c.Number),
		FullAddress:   c.FullAddress,
		Neighborhood:  c.Neighborhood,
		City:          c.City,
		State:         c.State,
		PaymentMethod: c.PaymentMethod,
	}
}

// CheckoutCreate validates the order form and converts the cart into an order.
func CheckoutCreate(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		var payload CheckoutRequest
		if err := validators.DecodeJSON(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form, fieldErrs := checkout.ValidateForm(payload.raw())
		if len(fieldErrs) > 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout form").WithDetails(fieldErrs))
			return
		}

		order, err := svc.Checkout(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Location", "/api/v1/orders/"+strconv.Itoa(order.ID))
		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderView(order))
	}
}
