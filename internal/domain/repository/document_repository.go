package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// DocumentRepository puerto de persistencia para los adjuntos de clientes.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
