package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bazaarlabs/bazaar-backend/api/middleware"
	"github.com/bazaarlabs/bazaar-backend/api/responses"
	"github.com/bazaarlabs/bazaar-backend/api/validators"
	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/logger"
)

// StockList pages through vendor listings, optionally filtered by the
// vendor query parameter.
func StockList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var vendorID *uuid.UUID
		if raw := r.URL.Query().Get("vendor"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor filter"))
				return
			}
			vendorID = &id
		}

		page, err := svc.ListStocks(r.Context(), middleware.ActorFromContext(r.Context()), vendorID, paginationParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// StockGet returns a single vendor listing.
func StockGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := svc.GetStock(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stock)
	}
}

// StockCreate lists a product for the acting vendor.
func StockCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload catalog.StockCreateRequest
		if err := validators.DecodeJSONBodyAllowUnknown(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := svc.CreateStock(r.Context(), middleware.ActorFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, stock)
	}
}

// StockUpdate mutates a vendor listing. A full replace demands stock and
// price; the product and vendor bindings are immutable either way.
func StockUpdate(svc catalog.Service, logg *logger.Logger, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload catalog.StockUpdateRequest
		if err := validators.DecodeJSONBodyAllowUnknown(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !partial && (payload.Stock == nil || payload.Price == nil) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "stock and price are required"))
			return
		}

		stock, err := svc.UpdateStock(r.Context(), middleware.ActorFromContext(r.Context()), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stock)
	}
}

// StockDelete removes a vendor listing.
func StockDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteStock(r.Context(), middleware.ActorFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
