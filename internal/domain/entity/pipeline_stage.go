package entity

import "time"

// PipelineStage es un paso con nombre dentro del embudo de ventas.
// Position es la clave de orden; exactamente una etapa tiene IsDefault = true.
type PipelineStage struct {
	ID        string
	Name      string
	Position  int
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
