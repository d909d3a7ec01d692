package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
)

type contextKey string

const (
	ctxAccountID contextKey = "account_id"
	ctxCategory  contextKey = "actor_category"
	ctxToken     contextKey = "session_token"
)

func AccountIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccountID).(string); ok {
		return v
	}
	return ""
}

func CategoryFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCategory).(string); ok {
		return v
	}
	return ""
}

func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// WithAccount injects the authenticated account into the context.
func WithAccount(ctx context.Context, accountID string, category string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAccountID, accountID)
	return context.WithValue(ctx, ctxCategory, category)
}

// WithToken stores the raw bearer token so logout can revoke it.
func WithToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxToken, token)
}

// ActorFromContext rebuilds the authorization actor seeded by Auth.
func ActorFromContext(ctx context.Context) authz.Actor {
	raw := AccountIDFromContext(ctx)
	if raw == "" {
		return authz.Actor{}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return authz.Actor{}
	}
	return authz.Actor{
		ID:            id,
		Category:      enums.AccountCategory(CategoryFromContext(ctx)),
		Authenticated: true,
	}
}
