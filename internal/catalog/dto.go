package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
)

// ProductCreateRequest is the payload for a new shared product.
type ProductCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ProductUpdateRequest carries a partial product update.
type ProductUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProductResponse is the serialized product.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProductResponse maps a model into its API representation.
func NewProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ProductListResponse is a cursor page of products.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// StockCreateRequest is the payload for a new vendor listing. The vendor
// is stamped from the authenticated actor, never read from the body.
type StockCreateRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Stock     int             `json:"stock" validate:"gte=0"`
	Price     decimal.Decimal `json:"price"`
}

// StockUpdateRequest carries a partial listing update. Product and vendor
// bindings are immutable once created.
type StockUpdateRequest struct {
	Stock *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// StockResponse is the serialized vendor listing.
type StockResponse struct {
	ID        uuid.UUID       `json:"id"`
	Product   ProductResponse `json:"product"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewStockResponse maps a model into its API representation.
func NewStockResponse(stock *models.ProductStock) StockResponse {
	return StockResponse{
		ID:        stock.ID,
		Product:   NewProductResponse(&stock.Product),
		VendorID:  stock.VendorID,
		Stock:     stock.Stock,
		Price:     stock.Price,
		CreatedAt: stock.CreatedAt,
		UpdatedAt: stock.UpdatedAt,
	}
}

// StockListResponse is a cursor page of vendor listings.
type StockListResponse struct {
	Stocks     []StockResponse `json:"stocks"`
	NextCursor string          `json:"next_cursor,omitempty"`
}
