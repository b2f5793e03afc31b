package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// TaskFilter criterios de listado de tareas.
type TaskFilter struct {
	CustomerID *string
	UserID     *string
	Completed  *bool
	DueFrom    *time.Time // inclusivo
	DueTo      *time.Time // inclusivo
}

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	// List ordena por due_date ascendente (sin fecha al final) y luego por creación descendente.
	List(ctx context.Context, f TaskFilter) ([]*entity.Task, error)
	Delete(ctx context.Context, id string) error
}
