package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// StageLogRepository historial de transiciones: solo inserción y lectura, nunca update ni delete.
type StageLogRepository interface {
	Append(ctx context.Context, log *entity.StageLog) error
	// ListByCustomer devuelve las entradas de la más antigua a la más reciente, con nombres resueltos.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.StageLogDetail, error)
	// Latest entrada más reciente; nil si no hay.
	Latest(ctx context.Context, customerID string) (*entity.StageLog, error)
	// LatestWithEmployee entrada más reciente con employee_id no nulo; nil si no hay.
	LatestWithEmployee(ctx context.Context, customerID string) (*entity.StageLog, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
}
