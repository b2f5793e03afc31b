package entity

import (
	"strings"
	"time"
)

// Customer representa un cliente del embudo de ventas.
// PipelineStageID solo queda vacío de forma transitoria antes de aplicar la etapa por defecto.
type Customer struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Description     string
	LeadSourceID    *string
	PipelineStageID *string
	EmployeeID      *string // usuario con rol employee asignado (nil = sin asignar)
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // borrado lógico (pestaña "archivados")
}

// FullName devuelve "Nombre Apellido" sin espacios sobrantes.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsDeleted informa si el cliente está archivado.
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}

// InStage informa si el cliente está actualmente en la etapa indicada.
func (c *Customer) InStage(stageID string) bool {
	return c.PipelineStageID != nil && *c.PipelineStageID == stageID
}

// CustomFieldValue valor de un campo personalizado para un cliente.
type CustomFieldValue struct {
	ID            string
	CustomerID    string
	CustomFieldID string
	FieldName     string // resuelto en lecturas
	Value         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
