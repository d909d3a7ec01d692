package transactions

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
)

// Service exposes read-only access to the purchase history.
type Service interface {
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (Response, error)
}

// ServiceParams packages the dependencies for the transactions service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService builds a transactions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transactions repository required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (Response, error) {
	if decision := authz.Transaction(actor, authz.ActionRead); decision != authz.Allow {
		return Response{}, decision.Err()
	}

	txn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return Response{}, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return Response{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load transaction")
	}
	return NewResponse(txn), nil
}
