package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultQuoteTaxes porcentaje de impuestos sugerido para una cotización nueva.
var DefaultQuoteTaxes = decimal.NewFromInt(20)

// Quote cotización para un cliente. Taxes es un porcentaje (20 = 20%).
type Quote struct {
	ID         string
	CustomerID string
	Taxes      decimal.Decimal
	Items      []QuoteItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuoteItem línea de la cotización (tabla product_quote).
type QuoteItem struct {
	ID          string
	QuoteID     string
	ProductID   string
	ProductName string // resuelto en lecturas
	Price       decimal.Decimal
	Quantity    int
}

// LineTotal precio por cantidad.
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal suma de las líneas sin impuestos.
func (q *Quote) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range q.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// TaxAmount impuestos sobre el subtotal.
func (q *Quote) TaxAmount() decimal.Decimal {
	return q.Subtotal().Mul(q.Taxes).Div(decimal.NewFromInt(100))
}

// Total subtotal * (1 + taxes/100).
func (q *Quote) Total() decimal.Decimal {
	return q.Subtotal().Add(q.TaxAmount())
}
