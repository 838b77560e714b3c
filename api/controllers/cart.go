package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/coffee-storefront/api/responses"
	"github.com/angelmondragon/coffee-storefront/api/validators"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
)

const maxItemIDLen = 64

type AddItemRequest struct {
	ID       string `json:"id" validate:"required,max=64"`
	Quantity int    `json:"quantity" validate:"min=1,max=99"`
}

// CartFetch returns the priced cart.
func CartFetch(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}
		writeCart(w, r, svc, logg)
	}
}

// CartAddItem adds a coffee to the cart, merging with an existing line.
func CartAddItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(w, r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := validators.SanitizeString(payload.ID, maxItemIDLen)
		if err := svc.AddItem(r.Context(), id, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, logg)
	}
}

// CartIncrementItem adds one unit of the item in the path.
func CartIncrementItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return cartItemHandler(svc, logg, func(s Storefront, ctx context.Context, id string) error {
		return s.IncrementItemQuantity(ctx, id)
	})
}

// CartDecrementItem removes one unit of the item in the path, never below one.
func CartDecrementItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return cartItemHandler(svc, logg, func(s Storefront, ctx context.Context, id string) error {
		return s.DecrementItemQuantity(ctx, id)
	})
}

// CartRemoveItem drops the item in the path from the cart.
func CartRemoveItem(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return cartItemHandler(svc, logg, func(s Storefront, ctx context.Context, id string) error {
		return s.RemoveItem(ctx, id)
	})
}

func cartItemHandler(svc Storefront, logg *logger.Logger, op func(Storefront, context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		id := validators.SanitizeString(chi.URLParam(r, "itemId"), maxItemIDLen)
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id required"))
			return
		}

		if err := op(svc, r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, r, svc, logg)
	}
}

func writeCart(w http.ResponseWriter, r *http.Request, svc Storefront, logg *logger.Logger) {
	summary, err := svc.Quote(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, newCartView(summary))
}
