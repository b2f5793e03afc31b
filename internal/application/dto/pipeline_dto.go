package dto

import "time"

// CreateStageRequest body para POST /api/pipeline-stages.
type CreateStageRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// RenameStageRequest body para PUT /api/pipeline-stages/:id.
type RenameStageRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ReorderStagesRequest body para PUT /api/pipeline-stages/order: ids en el nuevo orden.
type ReorderStagesRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// StageResponse etapa del embudo.
type StageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangeStageRequest body para POST /api/customers/:id/stage ("Mover a etapa").
type ChangeStageRequest struct {
	PipelineStageID string  `json:"pipeline_stage_id" validate:"required"`
	Notes           *string `json:"notes,omitempty"`
}

// BoardMoveRequest evento de arrastre del tablero: (cliente, etapa destino).
type BoardMoveRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	StageID    string `json:"stage_id" validate:"required"`
}

// ChangeEmployeeRequest body para PUT /api/customers/:id/employee. EmployeeID nulo = quitar.
type ChangeEmployeeRequest struct {
	EmployeeID *string `json:"employee_id"`
}

// HistoryEntryResponse entrada del historial de etapas de un cliente.
type HistoryEntryResponse struct {
	ID           string    `json:"id"`
	User         string    `json:"user"` // "System" si no hubo actor
	StageID      *string   `json:"pipeline_stage_id,omitempty"`
	StageName    string    `json:"pipeline_stage,omitempty"`
	EmployeeID   *string   `json:"employee_id,omitempty"`
	EmployeeName string    `json:"employee,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedAgo   string    `json:"created_ago"`
}

// BoardCardResponse tarjeta de cliente en el tablero.
type BoardCardResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BoardColumnResponse columna del tablero.
type BoardColumnResponse struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Group     string              `json:"group"`
	ColumnKey string              `json:"kanban_records_id"`
	Records   []BoardCardResponse `json:"records"`
}
