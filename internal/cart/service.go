package cart

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	"github.com/bazaarlabs/bazaar-backend/pkg/enums"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

// Service covers the consumer cart. Every lookup is scoped to the acting
// consumer, so a foreign row id behaves exactly like a missing one.
type Service interface {
	List(ctx context.Context, actor authz.Actor, params pagination.Params) (ListResponse, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (ItemResponse, error)
	Create(ctx context.Context, actor authz.Actor, req CreateRequest) (ItemResponse, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateRequest) (ItemResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// ServiceParams packages the dependencies for the cart service.
type ServiceParams struct {
	Repo    *Repository
	Catalog *catalog.Repository
}

type service struct {
	repo    *Repository
	catalog *catalog.Repository
}

// NewService builds a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repository required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{
		repo:    params.Repo,
		catalog: params.Catalog,
	}, nil
}

func (s *service) List(ctx context.Context, actor authz.Actor, params pagination.Params) (ListResponse, error) {
	if decision := authz.Cart(actor, authz.ActionRead); decision != authz.Allow {
		return ListResponse{}, decision.Err()
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return ListResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.ListScoped(ctx, scopeFor(actor), cursor, limit+1)
	if err != nil {
		return ListResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	resp := ListResponse{Items: make([]ItemResponse, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		resp.Items = append(resp.Items, NewItemResponse(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		resp.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			At: last.AddedAt,
			ID: last.ID,
		})
	}
	return resp, nil
}

func (s *service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (ItemResponse, error) {
	if decision := authz.Cart(actor, authz.ActionRead); decision != authz.Allow {
		return ItemResponse{}, decision.Err()
	}

	item, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return NewItemResponse(item), nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, req CreateRequest) (ItemResponse, error) {
	if decision := authz.Cart(actor, authz.ActionCreate); decision != authz.Allow {
		return ItemResponse{}, decision.Err()
	}
	if req.CartStock < 1 {
		return ItemResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "cart_stock must be at least 1")
	}

	if _, err := s.catalog.FindStock(ctx, req.ProductStockID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return ItemResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "product stock does not exist")
		}
		return ItemResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product stock")
	}

	item := &models.Cart{
		ProductStockID: req.ProductStockID,
		ConsumerID:     actor.ID,
		CartStock:      req.CartStock,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return ItemResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart item")
	}
	return NewItemResponse(item), nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateRequest) (ItemResponse, error) {
	if decision := authz.Cart(actor, authz.ActionUpdate); decision != authz.Allow {
		return ItemResponse{}, decision.Err()
	}

	item, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return ItemResponse{}, err
	}

	if req.CartStock != nil {
		if *req.CartStock < 1 {
			return ItemResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "cart_stock must be at least 1")
		}
		item.CartStock = *req.CartStock
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return ItemResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return NewItemResponse(item), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if decision := authz.Cart(actor, authz.ActionDelete); decision != authz.Allow {
		return decision.Err()
	}

	item, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Cart, error) {
	item, err := s.repo.FindScoped(ctx, id, scopeFor(actor))
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	return item, nil
}

// scopeFor returns the consumer scope for lookups. Admins see every row.
func scopeFor(actor authz.Actor) *uuid.UUID {
	if actor.Category == enums.AccountCategoryAdmin {
		return nil
	}
	id := actor.ID
	return &id
}
