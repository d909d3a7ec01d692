package catalog

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bazaarlabs/bazaar-backend/internal/authz"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
	pkgerrors "github.com/bazaarlabs/bazaar-backend/pkg/errors"
	"github.com/bazaarlabs/bazaar-backend/pkg/pagination"
)

// Service covers the shared product catalog and per-vendor listings.
type Service interface {
	ListProducts(ctx context.Context, actor authz.Actor, params pagination.Params) (ProductListResponse, error)
	GetProduct(ctx context.Context, actor authz.Actor, id uuid.UUID) (ProductResponse, error)
	CreateProduct(ctx context.Context, actor authz.Actor, req ProductCreateRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, actor authz.Actor, id uuid.UUID, req ProductUpdateRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, actor authz.Actor, id uuid.UUID) error

	ListStocks(ctx context.Context, actor authz.Actor, vendorID *uuid.UUID, params pagination.Params) (StockListResponse, error)
	GetStock(ctx context.Context, actor authz.Actor, id uuid.UUID) (StockResponse, error)
	CreateStock(ctx context.Context, actor authz.Actor, req StockCreateRequest) (StockResponse, error)
	UpdateStock(ctx context.Context, actor authz.Actor, id uuid.UUID, req StockUpdateRequest) (StockResponse, error)
	DeleteStock(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// ServiceParams packages the dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListProducts(ctx context.Context, actor authz.Actor, params pagination.Params) (ProductListResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionRead, nil); decision != authz.Allow {
		return ProductListResponse{}, decision.Err()
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return ProductListResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.ListProducts(ctx, cursor, limit+1)
	if err != nil {
		return ProductListResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	resp := ProductListResponse{Products: make([]ProductResponse, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		resp.Products = append(resp.Products, NewProductResponse(&rows[i]))
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

func (s *service) GetProduct(ctx context.Context, actor authz.Actor, id uuid.UUID) (ProductResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionRead, nil); decision != authz.Allow {
		return ProductResponse{}, decision.Err()
	}

	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}
	return NewProductResponse(product), nil
}

func (s *service) CreateProduct(ctx context.Context, actor authz.Actor, req ProductCreateRequest) (ProductResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionCreate, nil); decision != authz.Allow {
		return ProductResponse{}, decision.Err()
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ProductResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	product := &models.Product{
		Name:        name,
		Description: req.Description,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return ProductResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return NewProductResponse(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, actor authz.Actor, id uuid.UUID, req ProductUpdateRequest) (ProductResponse, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return ProductResponse{}, err
	}

	// Products have no vendor owner, so mutation is admin territory.
	if decision := authz.Catalog(actor, authz.ActionUpdate, nil); decision != authz.Allow {
		return ProductResponse{}, decision.Err()
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return ProductResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return ProductResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return NewProductResponse(product), nil
}

func (s *service) DeleteProduct(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if _, err := s.loadProduct(ctx, id); err != nil {
		return err
	}
	if decision := authz.Catalog(actor, authz.ActionDelete, nil); decision != authz.Allow {
		return decision.Err()
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func (s *service) ListStocks(ctx context.Context, actor authz.Actor, vendorID *uuid.UUID, params pagination.Params) (StockListResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionRead, nil); decision != authz.Allow {
		return StockListResponse{}, decision.Err()
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return StockListResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.ListStocks(ctx, vendorID, cursor, limit+1)
	if err != nil {
		return StockListResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stocks")
	}

	resp := StockListResponse{Stocks: make([]StockResponse, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		resp.Stocks = append(resp.Stocks, NewStockResponse(&rows[i]))
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

func (s *service) GetStock(ctx context.Context, actor authz.Actor, id uuid.UUID) (StockResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionRead, nil); decision != authz.Allow {
		return StockResponse{}, decision.Err()
	}

	stock, err := s.loadStock(ctx, id)
	if err != nil {
		return StockResponse{}, err
	}
	return NewStockResponse(stock), nil
}

func (s *service) CreateStock(ctx context.Context, actor authz.Actor, req StockCreateRequest) (StockResponse, error) {
	if decision := authz.Catalog(actor, authz.ActionCreate, nil); decision != authz.Allow {
		return StockResponse{}, decision.Err()
	}
	if err := validateStockValues(req.Stock, req.Price); err != nil {
		return StockResponse{}, err
	}

	exists, err := s.repo.ProductExists(ctx, req.ProductID)
	if err != nil {
		return StockResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check product")
	}
	if !exists {
		return StockResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "product does not exist")
	}

	stock := &models.ProductStock{
		ProductID: req.ProductID,
		VendorID:  actor.ID,
		Stock:     req.Stock,
		Price:     req.Price,
	}
	if err := s.repo.CreateStock(ctx, stock); err != nil {
		return StockResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create stock")
	}
	return NewStockResponse(stock), nil
}

func (s *service) UpdateStock(ctx context.Context, actor authz.Actor, id uuid.UUID, req StockUpdateRequest) (StockResponse, error) {
	stock, err := s.loadStock(ctx, id)
	if err != nil {
		return StockResponse{}, err
	}
	if decision := authz.Catalog(actor, authz.ActionUpdate, &stock.VendorID); decision != authz.Allow {
		return StockResponse{}, decision.Err()
	}

	if req.Stock != nil {
		stock.Stock = *req.Stock
	}
	if req.Price != nil {
		stock.Price = *req.Price
	}
	if err := validateStockValues(stock.Stock, stock.Price); err != nil {
		return StockResponse{}, err
	}

	if err := s.repo.SaveStock(ctx, stock); err != nil {
		return StockResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stock")
	}
	return NewStockResponse(stock), nil
}

func (s *service) DeleteStock(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	stock, err := s.loadStock(ctx, id)
	if err != nil {
		return err
	}
	if decision := authz.Catalog(actor, authz.ActionDelete, &stock.VendorID); decision != authz.Allow {
		return decision.Err()
	}
	if err := s.repo.DeleteStock(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete stock")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) loadStock(ctx context.Context, id uuid.UUID) (*models.ProductStock, error) {
	stock, err := s.repo.FindStock(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stock")
	}
	return stock, nil
}

func validateStockValues(stock int, price decimal.Decimal) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}
