package crm_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

type fakePDF struct {
	quote    *entity.Quote
	customer *entity.Customer
}

func (p *fakePDF) GenerateQuotePDF(_ context.Context, q *entity.Quote, c *entity.Customer) ([]byte, error) {
	p.quote, p.customer = q, c
	return []byte("%PDF"), nil
}

func TestQuotes_TotalesConImpuestoPorDefecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	products := crm.NewProductUseCase(f.store.Products())
	pdf := &fakePDF{}
	quotes := crm.NewQuoteUseCase(f.store.Quotes(), f.store.Products(), f.store.Customers(), f.store, pdf)
	c := f.create(t, admin, "Ana", "Gómez")

	widget, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: decimal.RequireFromString("10.50")})
	require.NoError(t, err)
	gadget, err := products.Create(ctx, dto.CreateProductRequest{Name: "Gadget", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	special := decimal.NewFromInt(80)
	q, err := quotes.Create(ctx, dto.CreateQuoteRequest{
		CustomerID: c.ID,
		Items: []dto.QuoteItemRequest{
			{ProductID: widget.ID, Quantity: 2},
			{ProductID: gadget.ID, Quantity: 1, Price: &special},
		},
	})
	require.NoError(t, err)
	assert.True(t, q.Taxes.Equal(entity.DefaultQuoteTaxes))
	assert.Equal(t, "101", q.Subtotal.String())
	assert.Equal(t, "121.2", q.Total.String())

	got, err := quotes.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Items[0].ProductName)

	data, name, err := quotes.PDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "quote-"+q.ID+".pdf", name)
	assert.Equal(t, c.ID, pdf.customer.ID)
}

func TestQuotes_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quotes := crm.NewQuoteUseCase(f.store.Quotes(), f.store.Products(), f.store.Customers(), f.store, &fakePDF{})
	c := f.create(t, admin, "Ana", "Gómez")

	_, err := quotes.Create(ctx, dto.CreateQuoteRequest{CustomerID: c.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = quotes.Create(ctx, dto.CreateQuoteRequest{CustomerID: c.ID, Items: []dto.QuoteItemRequest{{ProductID: "nope", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, _, err = quotes.PDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := quotes.List(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
