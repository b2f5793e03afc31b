package pipeline

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Customers repository.CustomerRepository
	Stages    repository.PipelineStageRepository
	Logs      repository.StageLogRepository
	Users     repository.UserRepository
	Quotes    repository.QuoteRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback; ninguna escritura parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
