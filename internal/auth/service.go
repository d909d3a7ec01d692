package auth

import (
	"context"
	stdErrors "errors"
	"strings"

	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/accounts"
	"github.com/bazaarlabs/bazaar-backend/pkg/auth/session"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/security"
)

// Sessions is the token lifecycle surface the service depends on.
type Sessions interface {
	Issue(ctx context.Context, accountID string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Service handles credential login and logout.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// ServiceParams packages the dependencies for the auth service.
type ServiceParams struct {
	Accounts *accounts.Repository
	Sessions Sessions
}

type service struct {
	accounts *accounts.Repository
	sessions Sessions
}

// NewService builds an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "accounts repository required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	return &service{
		accounts: params.Accounts,
		sessions: params.Sessions,
	}, nil
}

// Login validates credentials and returns the account's token. Every
// failure path returns the same UNAUTHORIZED so callers cannot probe
// which emails exist or which accounts are deactivated.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return LoginResponse{}, invalidCredentials()
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, invalidCredentials()
		}
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	if !account.IsActive {
		return LoginResponse{}, invalidCredentials()
	}

	ok, err := security.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil || !ok {
		return LoginResponse{}, invalidCredentials()
	}

	token, err := s.sessions.Issue(ctx, account.ID.String())
	if err != nil {
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue session token")
	}

	return LoginResponse{
		Token:   token,
		Account: accounts.NewAccountResponse(account),
	}, nil
}

// Logout revokes the presented token.
func (s *service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		if stdErrors.Is(err, session.ErrInvalidToken) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session token")
	}
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}
