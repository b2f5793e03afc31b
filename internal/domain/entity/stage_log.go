package entity

import "time"

// Notas fijas que escribe el servicio de transiciones.
const (
	NoteEmployeeRemoved = "Employee removed"
)

// StageLog es una entrada inmutable del historial de un cliente (tabla customer_pipeline_stages).
// Con PipelineStageID registra un cambio de etapa; con EmployeeID una reasignación; pueden ir ambos.
// UserID nil significa que la entrada la generó el sistema.
type StageLog struct {
	ID              string
	CustomerID      string
	PipelineStageID *string
	EmployeeID      *string
	UserID          *string
	Notes           *string
	CreatedAt       time.Time
}

// StageLogDetail entrada del historial con los nombres relacionados ya resueltos.
type StageLogDetail struct {
	StageLog
	StageName    *string
	EmployeeName *string
	UserName     *string
}
