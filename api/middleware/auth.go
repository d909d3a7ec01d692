package middleware

import (
	"context"
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/api/responses"
	"github.com/bazaarlabs/bazaar-backend/pkg/auth/session"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/logger"
)

// AccountLoader loads the account behind a resolved session.
type AccountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// Auth resolves the opaque bearer token through the session store, loads
// the account and seeds the request context for controllers.
func Auth(resolver session.Resolver, accounts AccountLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			rawAccountID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if stdErrors.Is(err, session.ErrInvalidToken) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session token"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session"))
				return
			}

			accountID, err := uuid.Parse(rawAccountID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session account"))
				return
			}

			account, err := accounts.FindByID(r.Context(), accountID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account"))
				return
			}
			if !account.IsActive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account deactivated"))
				return
			}

			ctx := WithAccount(r.Context(), account.ID.String(), account.Category.String())
			ctx = WithToken(ctx, token)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"account_id":     account.ID.String(),
					"actor_category": account.Category.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
