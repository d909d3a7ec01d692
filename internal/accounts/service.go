package accounts

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/pkg/config"
	"github.com/bazaarlabs/bazaar-backend/pkg/db"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
	"github.com/bazaarlabs/bazaar-backend/pkg/security"
)

// Service covers registration, self-profile management and admin listing.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AccountResponse, error)
	Profile(ctx context.Context, accountID uuid.UUID) (AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, req UpdateProfileRequest) (AccountResponse, error)
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
	List(ctx context.Context, actor authz.Actor, params pagination.Params) (ListResponse, error)
}

// ServiceParams packages the dependencies for the accounts service.
type ServiceParams struct {
	Repo           *Repository
	PasswordConfig config.PasswordConfig
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService builds an accounts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "accounts repository required")
	}
	return &service{
		repo:        params.Repo,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AccountResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return AccountResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	category, err := resolveCategory(req.Category)
	if err != nil {
		return AccountResponse{}, err
	}
	if err := s.checkPassword(req.Password); err != nil {
		return AccountResponse{}, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return AccountResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return AccountResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
	} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return AccountResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check account email")
	}

	account, err := s.repo.Create(ctx, CreateAccountDTO{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Category:     category,
		IsStaff:      category == enums.AccountCategoryAdmin,
		IsSuperuser:  category == enums.AccountCategoryAdmin,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_accounts_email") {
			return AccountResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
		}
		return AccountResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	return NewAccountResponse(account), nil
}

func (s *service) Profile(ctx context.Context, accountID uuid.UUID) (AccountResponse, error) {
	account, err := s.loadOwn(ctx, accountID)
	if err != nil {
		return AccountResponse{}, err
	}
	return NewAccountResponse(account), nil
}

func (s *service) UpdateProfile(ctx context.Context, accountID uuid.UUID, req UpdateProfileRequest) (AccountResponse, error) {
	account, err := s.loadOwn(ctx, accountID)
	if err != nil {
		return AccountResponse{}, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return AccountResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		account.Email = email
	}
	if req.Password != nil {
		if err := s.checkPassword(*req.Password); err != nil {
			return AccountResponse{}, err
		}
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return AccountResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		account.PasswordHash = hash
	}
	if req.Category != nil {
		category, err := resolveCategory(*req.Category)
		if err != nil {
			return AccountResponse{}, err
		}
		account.Category = category
	}

	// Staff flags always follow the category, whatever the client sent.
	isAdmin := account.Category == enums.AccountCategoryAdmin
	account.IsStaff = isAdmin
	account.IsSuperuser = isAdmin

	if err := s.repo.Save(ctx, account); err != nil {
		if db.IsUniqueViolation(err, "idx_accounts_email") {
			return AccountResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email already registered")
		}
		return AccountResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update account")
	}

	return NewAccountResponse(account), nil
}

func (s *service) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.loadOwn(ctx, accountID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, accountID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	return nil
}

func (s *service) List(ctx context.Context, actor authz.Actor, params pagination.Params) (ListResponse, error) {
	if decision := authz.AccountList(actor); decision != authz.Allow {
		return ListResponse{}, decision.Err()
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return ListResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, cursor, limit+1)
	if err != nil {
		return ListResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list accounts")
	}

	resp := ListResponse{Accounts: make([]AccountResponse, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		resp.Accounts = append(resp.Accounts, NewAccountResponse(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		resp.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			At: last.CreatedAt,
			ID: last.ID,
		})
	}
	return resp, nil
}

func (s *service) loadOwn(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	row, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return row, nil
}

func (s *service) checkPassword(password string) error {
	if len(password) < s.passwordCfg.MinLength {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", s.passwordCfg.MinLength),
		)
	}
	return nil
}

func resolveCategory(raw string) (enums.AccountCategory, error) {
	if strings.TrimSpace(raw) == "" {
		return enums.AccountCategoryConsumer, nil
	}
	category, err := enums.ParseAccountCategory(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid account category")
	}
	return category, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
