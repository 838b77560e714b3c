package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/coffee-storefront/api/responses"
	"github.com/angelmondragon/coffee-storefront/api/validators"
	"github.com/angelmondragon/coffee-storefront/internal/orders"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
	"github.com/angelmondragon/coffee-storefront/pkg/pagination"
)

// OrdersList pages through order history newest first. ?cursor continues from
// the nextCursor of a previous page.
func OrdersList(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}
		before, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		responses.WriteSuccess(w, newOrdersPage(svc.Orders(), before, pagination.NormalizeLimit(params.Limit)))
	}
}

func newOrdersPage(history []orders.Order, before, limit int) OrdersPage {
	page := OrdersPage{Orders: make([]OrderView, 0, limit)}
	for i := len(history) - 1; i >= 0; i-- {
		o := history[i]
		if before > 0 && o.ID >= before {
			continue
		}
		if len(page.Orders) == limit {
			page.NextCursor = pagination.EncodeCursor(page.Orders[limit-1].ID)
			break
		}
		page.Orders = append(page.Orders, newOrderView(o))
	}
	return page
}

// OrderFetch backs the confirmation screen. Unknown or malformed ids produce
// found=false so the client can render its empty state.
func OrderFetch(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}

		id, ok := validators.ParseID(chi.URLParam(r, "orderId"))
		if !ok {
			responses.WriteSuccess(w, OrderLookupView{Found: false})
			return
		}

		order, found := svc.FindOrder(id)
		if !found {
			responses.WriteSuccess(w, OrderLookupView{Found: false})
			return
		}
		view := newOrderView(order)
		responses.WriteSuccess(w, OrderLookupView{Found: true, Order: &view})
	}
}
