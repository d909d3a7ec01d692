package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
)

// CreateRequest reserves a quantity of a vendor listing. The consumer is
// stamped from the authenticated actor, never read from the body.
type CreateRequest struct {
	ProductStockID uuid.UUID `json:"product_stock_id" validate:"required"`
	CartStock      int       `json:"cart_stock" validate:"required,gte=1"`
}

// UpdateRequest changes the reserved quantity. The listing and consumer
// bindings are immutable, so they are not part of the update payload.
type UpdateRequest struct {
	CartStock *int `json:"cart_stock,omitempty" validate:"omitempty,gte=1"`
}

// ItemResponse is the serialized cart row.
type ItemResponse struct {
	ID         uuid.UUID             `json:"id"`
	Stock      catalog.StockResponse `json:"stock"`
	ConsumerID uuid.UUID             `json:"consumer_id"`
	CartStock  int                   `json:"cart_stock"`
	AddedAt    time.Time             `json:"added_at"`
}

// NewItemResponse maps a model into its API representation.
func NewItemResponse(item *models.Cart) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Stock:      catalog.NewStockResponse(&item.ProductStock),
		ConsumerID: item.ConsumerID,
		CartStock:  item.CartStock,
		AddedAt:    item.AddedAt,
	}
}

// ListResponse is a cursor page of cart rows.
type ListResponse struct {
	Items      []ItemResponse `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
