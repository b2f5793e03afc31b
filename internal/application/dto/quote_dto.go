package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest línea de cotización. Price nulo = precio de lista del producto.
type QuoteItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int              `json:"quantity" validate:"min=1"`
}

// CreateQuoteRequest body para POST /api/quotes. Taxes nulo = 20%.
type CreateQuoteRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Taxes      *decimal.Decimal   `json:"taxes,omitempty"`
	Items      []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuoteItemResponse línea de cotización.
type QuoteItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// QuoteResponse cotización con totales calculados.
type QuoteResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Taxes      decimal.Decimal     `json:"taxes"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Total      decimal.Decimal     `json:"total"`
	Items      []QuoteItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
}
