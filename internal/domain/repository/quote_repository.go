package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// QuoteRepository puerto de persistencia para Quote y sus líneas.
// Create inserta cabecera y líneas; debe llamarse dentro de una transacción.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	// List cotizaciones (con líneas); customerID vacío = todas.
	List(ctx context.Context, customerID string) ([]*entity.Quote, error)
}
