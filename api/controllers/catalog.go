package controllers

import (
	"net/http"

	"github.com/angelmondragon/coffee-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
	"github.com/angelmondragon/coffee-storefront/pkg/logger"
)

// CatalogList returns every coffee on the menu.
func CatalogList(svc Storefront, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable"))
			return
		}
		products := svc.Catalog().List()
		out := make([]ProductView, 0, len(products))
		for _, p := range products {
			out = append(out, newProductView(p))
		}
		responses.WriteSuccess(w, out)
	}
}
