package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo que se puede cotizar.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de lista
	CreatedAt time.Time
	UpdatedAt time.Time
}
