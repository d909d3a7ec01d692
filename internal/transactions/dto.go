package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/bazaar-backend/internal/catalog"
	"github.com/bazaarlabs/bazaar-backend/pkg/db/models"
)

// LineResponse is one immutable purchase line snapshot.
type LineResponse struct {
	ID      uuid.UUID               `json:"id"`
	Product catalog.ProductResponse `json:"product"`
	Stock   int                     `json:"stock"`
	Price   decimal.Decimal         `json:"price"`
}

// Response is the serialized transaction with its lines.
type Response struct {
	ID         uuid.UUID      `json:"id"`
	ConsumerID uuid.UUID      `json:"consumer_id"`
	Products   []LineResponse `json:"products"`
	ListedAt   time.Time      `json:"listed_at"`
}

// NewResponse maps a model into its API representation.
func NewResponse(txn *models.Transaction) Response {
	resp := Response{
		ID:         txn.ID,
		ConsumerID: txn.ConsumerID,
		Products:   make([]LineResponse, 0, len(txn.Products)),
		ListedAt:   txn.ListedAt,
	}
	for i := range txn.Products {
		line := &txn.Products[i]
		resp.Products = append(resp.Products, LineResponse{
			ID:      line.ID,
			Product: catalog.NewProductResponse(&line.Product),
			Stock:   line.Stock,
			Price:   line.Price,
		})
	}
	return resp
}

// CreateLine describes one line of a purchase snapshot at write time.
type CreateLine struct {
	ProductID uuid.UUID
	Stock     int
	Price     decimal.Decimal
}
