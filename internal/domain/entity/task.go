package entity

import "time"

// Task tarea de seguimiento sobre un cliente, opcionalmente asignada a un empleado.
type Task struct {
	ID          string
	CustomerID  string
	UserID      *string // empleado responsable
	Description string  // texto enriquecido (HTML)
	DueDate     *time.Time
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
