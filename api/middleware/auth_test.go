package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/pkg/auth/session"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

type stubResolver struct {
	accountID string
	err       error
}

func (s stubResolver) Resolve(context.Context, string) (string, error) {
	return s.accountID, s.err
}

type stubLoader struct {
	account *models.Account
	err     error
}

func (s stubLoader) FindByID(context.Context, uuid.UUID) (*models.Account, error) {
	return s.account, s.err
}

func runAuth(t *testing.T, resolver session.Resolver, loader AccountLoader, header string) (*httptest.ResponseRecorder, context.Context) {
	t.Helper()

	var seen context.Context
	handler := Auth(resolver, loader, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Context()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runAuth(t, stubResolver{}, stubLoader{}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	rec, _ := runAuth(t, stubResolver{err: session.ErrInvalidToken}, stubLoader{}, "Bearer nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsInactiveAccount(t *testing.T) {
	account := &models.Account{
		ID:       uuid.New(),
		Category: enums.AccountCategoryConsumer,
		IsActive: false,
	}
	rec, _ := runAuth(t,
		stubResolver{accountID: account.ID.String()},
		stubLoader{account: account},
		"Bearer live-token",
	)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsDeletedAccount(t *testing.T) {
	rec, _ := runAuth(t,
		stubResolver{accountID: uuid.NewString()},
		stubLoader{err: gorm.ErrRecordNotFound},
		"Bearer live-token",
	)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSeedsContext(t *testing.T) {
	account := &models.Account{
		ID:       uuid.New(),
		Category: enums.AccountCategoryVendor,
		IsActive: true,
	}
	rec, ctx := runAuth(t,
		stubResolver{accountID: account.ID.String()},
		stubLoader{account: account},
		"Bearer live-token",
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got := AccountIDFromContext(ctx); got != account.ID.String() {
		t.Fatalf("account id not seeded, got %q", got)
	}
	if got := CategoryFromContext(ctx); got != "vendor" {
		t.Fatalf("category not seeded, got %q", got)
	}
	if got := TokenFromContext(ctx); got != "live-token" {
		t.Fatalf("token not seeded, got %q", got)
	}

	actor := ActorFromContext(ctx)
	if !actor.Authenticated || actor.ID != account.ID || actor.Category != enums.AccountCategoryVendor {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}
