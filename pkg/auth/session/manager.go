package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/bazaarlabs/bazaar-backend/pkg/config"
	redisclient "github.com/bazaarlabs/bazaar-backend/pkg/redis"
)

const tokenBytes = 32

// ErrInvalidToken signals a token with no live session behind it.
var ErrInvalidToken = errors.New("invalid session token")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionTokenKey(token string) string
	SessionAccountKey(accountID string) string
}

// Manager hands out opaque bearer tokens, at most one live token per
// account. Issue is idempotent: a login while a token exists returns the
// existing token instead of minting a duplicate.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Resolver exposes the read-only surface needed by middleware.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TokenTTL(),
	}, nil
}

// Issue returns the account's bearer token, creating one when none exists.
// Concurrent logins race on SetNX against the account key so exactly one
// caller mints; the rest read the winner's token back.
func (m *Manager) Issue(ctx context.Context, accountID string) (string, error) {
	if strings.TrimSpace(accountID) == "" {
		return "", fmt.Errorf("account id is required")
	}

	candidate, err := generateToken()
	if err != nil {
		return "", err
	}

	accountKey := m.keyer.SessionAccountKey(accountID)
	created, err := m.store.SetNX(ctx, accountKey, candidate, m.ttl)
	if err != nil {
		return "", err
	}
	if !created {
		existing, err := m.store.Get(ctx, accountKey)
		if err != nil {
			if errors.Is(err, redislib.Nil) {
				// Token expired between SetNX and Get; retry once.
				return m.Issue(ctx, accountID)
			}
			return "", err
		}
		return existing, nil
	}

	if err := m.store.Set(ctx, m.keyer.SessionTokenKey(candidate), accountID, m.ttl); err != nil {
		return "", err
	}
	return candidate, nil
}

// Resolve maps a presented token back to its account id.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	accountID, err := m.store.Get(ctx, m.keyer.SessionTokenKey(token))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return accountID, nil
}

// Revoke deletes both mappings so the token stops authenticating.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	tokenKey := m.keyer.SessionTokenKey(token)
	accountID, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return ErrInvalidToken
		}
		return err
	}
	return m.store.Del(ctx, tokenKey, m.keyer.SessionAccountKey(accountID))
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
