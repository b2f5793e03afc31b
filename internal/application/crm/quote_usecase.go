package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase catálogo de productos cotizables.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El precio no puede ser negativo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), Name: name, Price: in.Price, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update cambia nombre y precio de lista. Las cotizaciones ya emitidas conservan su precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name, p.Price, p.UpdatedAt = name, in.Price, time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt}
}

// ── Quotes ──

// QuoteUseCase cotizaciones para clientes y su PDF.
type QuoteUseCase struct {
	quotes    repository.QuoteRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	tx        pipeline.TxRunner
	pdf       ports.QuotePDFGenerator
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	quotes repository.QuoteRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	tx pipeline.TxRunner,
	pdf ports.QuotePDFGenerator,
) *QuoteUseCase {
	return &QuoteUseCase{quotes: quotes, products: products, customers: customers, tx: tx, pdf: pdf}
}

// Create registra la cotización con sus líneas. Taxes nulo = entity.DefaultQuoteTaxes;
// una línea sin precio toma el precio de lista del producto.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la cotización no tiene líneas", domain.ErrInvalidInput)
	}
	taxes := entity.DefaultQuoteTaxes
	if in.Taxes != nil {
		taxes = *in.Taxes
	}
	if taxes.IsNegative() || taxes.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: taxes fuera de rango", domain.ErrInvalidInput)
	}
	c, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	quote := &entity.Quote{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Taxes:      taxes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: cantidad %d", domain.ErrInvalidInput, it.Quantity)
		}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %q", domain.ErrNotFound, it.ProductID)
		}
		price := p.Price
		if it.Price != nil {
			if it.Price.IsNegative() {
				return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
			}
			price = *it.Price
		}
		quote.Items = append(quote.Items, entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       price,
			Quantity:    it.Quantity,
		})
	}
	if err := uc.tx.Run(ctx, func(r pipeline.Repos) error {
		return r.Quotes.Create(ctx, quote)
	}); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

func (uc *QuoteUseCase) Get(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(q), nil
}

// List cotizaciones; customerID vacío = todas.
func (uc *QuoteUseCase) List(ctx context.Context, customerID string) ([]*dto.QuoteResponse, error) {
	list, err := uc.quotes.List(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuoteResponse(q))
	}
	return out, nil
}

// PDF genera el documento de la cotización. Devuelve también un nombre de archivo sugerido.
func (uc *QuoteUseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	c, err := uc.customers.GetByID(ctx, q.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.pdf.GenerateQuotePDF(ctx, q, c)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf: %w", err)
	}
	return data, "quote-" + q.ID + ".pdf", nil
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	items := make([]dto.QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuoteItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	return &dto.QuoteResponse{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		Taxes:      q.Taxes,
		Subtotal:   q.Subtotal(),
		Total:      q.Total(),
		Items:      items,
		CreatedAt:  q.CreatedAt,
	}
}
