package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	dompipeline "github.com/jhoicas/pipeline-crm/internal/domain/pipeline"
)

// TransitionService aplica cambios de etapa y de empleado sobre un cliente, escribiendo
// una entrada inmutable del historial por cada cambio. Actualización y entrada comparten
// transacción: o se aplican ambas o ninguna.
type TransitionService struct {
	tx       TxRunner
	notifier ports.Notifier
	now      func() time.Time
}

// NewTransitionService construye el servicio.
func NewTransitionService(tx TxRunner, notifier ports.Notifier) *TransitionService {
	return &TransitionService{
		tx:       tx,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ChangeStage mueve el cliente a newStageID y registra la transición con las notas dadas.
// Es incondicional: repetir la misma etapa agrega otra entrada (cada entrada es un evento).
// ErrNotFound si el cliente no existe o está archivado, o si la etapa no existe.
func (s *TransitionService) ChangeStage(ctx context.Context, customerID, newStageID string, notes, actor *string) (*entity.StageLog, error) {
	var (
		entry    *entity.StageLog
		customer *entity.Customer
	)
	err := s.tx.Run(ctx, func(r Repos) error {
		var err error
		customer, err = r.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.IsDeleted() {
			return domain.ErrNotFound
		}
		stage, err := r.Stages.GetByID(ctx, newStageID)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		now := s.now()
		if err := r.Customers.UpdateStage(ctx, customerID, newStageID, now); err != nil {
			return err
		}
		stageID := newStageID
		entry = &entity.StageLog{
			ID:              uuid.New().String(),
			CustomerID:      customerID,
			PipelineStageID: &stageID,
			UserID:          actor,
			Notes:           notes,
			CreatedAt:       now,
		}
		return r.Logs.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, ports.Notification{
		UserID: actor,
		Level:  ports.NotificationSuccess,
		Title:  customer.FullName() + " Pipeline Stage Updated",
	})
	return entry, nil
}

// ChangeEmployee asigna (o quita, con nil) el empleado del cliente.
//
// La decisión de registrar se toma contra el empleado de la última entrada del historial con
// employee_id no nulo, no contra la fila del cliente (ver dompipeline.EmployeeChangeLog).
// Devuelve la entrada agregada o nil si no hubo que registrar nada.
func (s *TransitionService) ChangeEmployee(ctx context.Context, customerID string, newEmployeeID, actor *string) (*entity.StageLog, error) {
	var entry *entity.StageLog
	err := s.tx.Run(ctx, func(r Repos) error {
		customer, err := r.Customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil || customer.IsDeleted() {
			return domain.ErrNotFound
		}
		if newEmployeeID != nil {
			emp, err := r.Users.GetByID(ctx, *newEmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return domain.ErrNotFound
			}
		}
		now := s.now()
		if err := r.Customers.UpdateEmployee(ctx, customerID, newEmployeeID, now); err != nil {
			return err
		}
		last, err := r.Logs.LatestWithEmployee(ctx, customerID)
		if err != nil {
			return err
		}
		shouldLog, notes := dompipeline.EmployeeChangeLog(last, newEmployeeID)
		if !shouldLog {
			return nil
		}
		entry = &entity.StageLog{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			EmployeeID: newEmployeeID,
			UserID:     actor,
			Notes:      &notes,
			CreatedAt:  now,
		}
		return r.Logs.Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// OnCustomerCreated escribe la primera entrada del historial de un cliente recién creado.
// Debe llamarse con los repositorios de la misma transacción que insertó el cliente.
func (s *TransitionService) OnCustomerCreated(ctx context.Context, r Repos, customer *entity.Customer, actor *string) (*entity.StageLog, error) {
	entry := &entity.StageLog{
		ID:              uuid.New().String(),
		CustomerID:      customer.ID,
		PipelineStageID: customer.PipelineStageID,
		EmployeeID:      customer.EmployeeID,
		UserID:          actor,
		CreatedAt:       s.now(),
	}
	if err := r.Logs.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
