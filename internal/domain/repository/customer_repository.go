package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// CustomerFilter criterios de listado de clientes (pestañas del listado).
type CustomerFilter struct {
	StageID     *string // solo clientes en esta etapa
	EmployeeID  *string // solo clientes asignados a este empleado
	OnlyDeleted bool    // archivados; por defecto se excluyen
	Search      string  // coincidencia parcial en nombre, apellido, email o teléfono
	Limit       int     // 0 = sin límite
	Offset      int
}

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID devuelve (nil, nil) si no existe; incluye clientes archivados.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdateStage(ctx context.Context, id, stageID string, at time.Time) error
	UpdateEmployee(ctx context.Context, id string, employeeID *string, at time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Restore(ctx context.Context, id string) error
	// List devuelve clientes en orden de inserción (created_at, id).
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, error)
	Count(ctx context.Context, f CustomerFilter) (int, error)
	// CountByStage cuenta todas las filas (incluidas archivadas) que referencian la etapa.
	CountByStage(ctx context.Context, stageID string) (int, error)
	CountByLeadSource(ctx context.Context, leadSourceID string) (int, error)

	SetTags(ctx context.Context, customerID string, tagIDs []string) error
	ListTags(ctx context.Context, customerID string) ([]*entity.Tag, error)
	SetCustomFields(ctx context.Context, customerID string, values []*entity.CustomFieldValue) error
	ListCustomFields(ctx context.Context, customerID string) ([]*entity.CustomFieldValue, error)
}
