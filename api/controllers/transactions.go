package controllers

import (
	"net/http"

	"github.com/bazaarlabs/bazaar-backend/api/middleware"
	"github.com/bazaarlabs/bazaar-backend/api/responses"
	txsvc "github.com/bazaarlabs/bazaar-backend/internal/transactions"
	"github.com/bazaarlabs/bazaar-backend/pkg/logger"
)

// TransactionGet returns an immutable purchase record with its lines.
func TransactionGet(svc txsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.Get(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txn)
	}
}
