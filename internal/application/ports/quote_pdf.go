package ports

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// QuotePDFGenerator genera la representación PDF de una cotización.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, customer *entity.Customer) ([]byte, error)
}
