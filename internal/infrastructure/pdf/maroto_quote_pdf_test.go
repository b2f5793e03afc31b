package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", money(decimal.Zero))
	assert.Equal(t, "$999.90", money(decimal.RequireFromString("999.9")))
	assert.Equal(t, "$1,234,567.50", money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$1,000.00", money(decimal.NewFromInt(-1000)))
}

func TestGenerateQuotePDF(t *testing.T) {
	q := &entity.Quote{
		ID:         "3f2a9c1e-0000-4000-8000-000000000001",
		CustomerID: "c1",
		Taxes:      entity.DefaultQuoteTaxes,
		CreatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []entity.QuoteItem{
			{ProductName: "Widget", Price: decimal.RequireFromString("10.50"), Quantity: 2},
			{ProductName: "Gadget", Price: decimal.NewFromInt(80), Quantity: 1},
		},
	}
	c := &entity.Customer{ID: "c1", FirstName: "Ana", LastName: "Gómez", Email: "ana@example.com"}

	data, err := NewQuotePDFGenerator("Pipeline CRM").GenerateQuotePDF(context.Background(), q, c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
