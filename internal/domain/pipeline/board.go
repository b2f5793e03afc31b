// Package pipeline contiene las reglas puras del embudo de ventas: agrupación del tablero
// Kanban y decisión de registro de reasignaciones. No depende de infraestructura.
package pipeline

import "github.com/jhoicas/pipeline-crm/internal/domain/entity"

// BoardCard resumen de un cliente dentro de una columna.
type BoardCard struct {
	ID    string
	Title string
}

// BoardColumn columna del tablero: una etapa con sus clientes.
// Group es común a todas las columnas (permite arrastrar entre ellas);
// ColumnKey identifica de forma estable la lista de tarjetas de esta etapa.
type BoardColumn struct {
	ID        string
	Title     string
	Group     string
	ColumnKey string
	Records   []BoardCard
}

// BoardFor agrupa los clientes por etapa actual. Las columnas siguen el orden de stages y,
// dentro de cada columna, los clientes conservan el orden de entrada (no se reordenan).
// Clientes sin etapa o con una etapa desconocida no aparecen.
func BoardFor(group string, stages []*entity.PipelineStage, customers []*entity.Customer) []BoardColumn {
	columns := make([]BoardColumn, 0, len(stages))
	index := make(map[string]int, len(stages))
	for _, s := range stages {
		index[s.ID] = len(columns)
		columns = append(columns, BoardColumn{
			ID:        s.ID,
			Title:     s.Name,
			Group:     group,
			ColumnKey: group + "-" + s.ID,
			Records:   []BoardCard{},
		})
	}
	for _, c := range customers {
		if c.PipelineStageID == nil {
			continue
		}
		i, ok := index[*c.PipelineStageID]
		if !ok {
			continue
		}
		columns[i].Records = append(columns[i].Records, BoardCard{ID: c.ID, Title: c.FullName()})
	}
	return columns
}
