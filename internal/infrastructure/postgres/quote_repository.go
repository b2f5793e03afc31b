package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cotizaciones (quotes) y sus líneas (product_quote).
type QuoteRepo struct {
	q Querier
}

func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create inserta cabecera y líneas. Llamar dentro de TxRunner.Run para que sea atómico.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotes (id, customer_id, taxes, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		quote.ID, quote.CustomerID, quote.Taxes, quote.CreatedAt, quote.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %q", domain.ErrNotFound, quote.CustomerID)
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	batch := &pgx.Batch{}
	for i, it := range quote.Items {
		batch.Queue(`
			INSERT INTO product_quote (id, quote_id, product_id, price, quantity, line_no)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, quote.ID, it.ProductID, it.Price, it.Quantity, i)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := sendBatch(ctx, r.q, batch); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert quote items: %w", err)
	}
	return nil
}

// sendBatch usa SendBatch cuando el Querier lo soporta (pool y tx lo hacen).
func sendBatch(ctx context.Context, q Querier, b *pgx.Batch) error {
	if bs, ok := q.(interface {
		SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
	}); ok {
		return bs.SendBatch(ctx, b).Close()
	}
	for _, qq := range b.QueuedQueries {
		if _, err := q.Exec(ctx, qq.SQL, qq.Arguments...); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	list, err := r.list(ctx, `WHERE q.id = $1`, id)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// List cotizaciones con sus líneas; customerID vacío = todas.
func (r *QuoteRepo) List(ctx context.Context, customerID string) ([]*entity.Quote, error) {
	if customerID == "" {
		return r.list(ctx, "")
	}
	return r.list(ctx, `WHERE q.customer_id = $1`, customerID)
}

func (r *QuoteRepo) list(ctx context.Context, where string, args ...any) ([]*entity.Quote, error) {
	rows, err := r.q.Query(ctx, `
		SELECT q.id, q.customer_id, q.taxes, q.created_at, q.updated_at
		FROM quotes q `+where+` ORDER BY q.created_at, q.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	var quotes []*entity.Quote
	byID := map[string]*entity.Quote{}
	var ids []string
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.CustomerID, &q.Taxes, &q.CreatedAt, &q.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.Items = []entity.QuoteItem{}
		quotes = append(quotes, &q)
		byID[q.ID] = &q
		ids = append(ids, q.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	if len(ids) == 0 {
		return []*entity.Quote{}, nil
	}

	items, err := r.q.Query(ctx, `
		SELECT pq.id, pq.quote_id, pq.product_id, p.name, pq.price, pq.quantity
		FROM product_quote pq JOIN products p ON p.id = pq.product_id
		WHERE pq.quote_id = ANY($1::uuid[])
		ORDER BY pq.quote_id, pq.line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer items.Close()
	for items.Next() {
		var it entity.QuoteItem
		if err := items.Scan(&it.ID, &it.QuoteID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		if q := byID[it.QuoteID]; q != nil {
			q.Items = append(q.Items, it)
		}
	}
	return quotes, items.Err()
}
