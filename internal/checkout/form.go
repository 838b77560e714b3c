package checkout

import (
	"reflect"
	"strings"

	"github.com/angelmondragon/coffee-storefront/internal/orders"
	"github.com/angelmondragon/coffee-storefront/pkg/enums"
	"github.com/go-playground/validator/v10"
)

// RawForm is the checkout form as submitted, before validation.
type RawForm struct {
	CEP           string `json:"cep" validate:"required,number"`
	Street        string `json:"street" validate:"required"`
	Number        string `json:"number" validate:"required"`
	FullAddress   string `json:"fullAddress"`
	Neighborhood  string `json:"neighborhood" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required,max=2"`
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
}

// Form is a checkout payload that passed validation.
type Form struct {
	Address       orders.Address
	PaymentMethod enums.PaymentMethod
}

// FieldErrors maps a json field name to the message shown next to that field.
type FieldErrors map[string]string

var fieldMessages = map[string]string{
	"cep":           "Enter the ZIP Code",
	"street":        "Enter the street",
	"number":        "Enter the number",
	"neighborhood":  "Enter the neighborhood",
	"city":          "Enter the city",
	"state":         "Enter the state",
	"paymentMethod": "Select a payment method",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		_, err := enums.ParsePaymentMethod(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateForm trims the raw input and returns either the typed form or the
// per-field messages.
func ValidateForm(raw RawForm) (Form, FieldErrors) {
	raw = raw.normalized()
	if err := validate.Struct(raw); err != nil {
		return Form{}, fieldErrorsFrom(err)
	}
	method, _ := enums.ParsePaymentMethod(raw.PaymentMethod)
	return Form{
		Address: orders.Address{
			CEP:          raw.CEP,
			Street:       raw.Street,
			Number:       raw.Number,
			FullAddress:  raw.FullAddress,
			Neighborhood: raw.Neighborhood,
			City:         raw.City,
			State:        raw.State,
		},
		PaymentMethod: method,
	}, nil
}

// Raw converts a typed form back into its submitted shape.
func (f Form) Raw() RawForm {
	return RawForm{
		CEP:           f.Address.CEP,
		Street:        f.Address.Street,
		Number:        f.Address.Number,
		FullAddress:   f.Address.FullAddress,
		Neighborhood:  f.Address.Neighborhood,
		City:          f.Address.City,
		State:         f.Address.State,
		PaymentMethod: string(f.PaymentMethod),
	}
}

func (r RawForm) normalized() RawForm {
	r.CEP = strings.TrimSpace(r.CEP)
	r.Street = strings.TrimSpace(r.Street)
	r.Number = strings.TrimSpace(r.Number)
	r.FullAddress = strings.TrimSpace(r.FullAddress)
	r.Neighborhood = strings.TrimSpace(r.Neighborhood)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
	r.PaymentMethod = strings.ToLower(strings.TrimSpace(r.PaymentMethod))
	return r
}

func fieldErrorsFrom(err error) FieldErrors {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range errs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if fe.Field() == "state" && fe.Tag() == "max" {
		return "Use the two-letter state code"
	}
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return "is invalid"
}
