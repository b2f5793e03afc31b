package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/pipeline"
)

func strPtr(s string) *string { return &s }

func cardIDs(col pipeline.BoardColumn) []string {
	ids := make([]string, 0, len(col.Records))
	for _, r := range col.Records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBoardFor_AgrupaPorEtapaConservandoOrden(t *testing.T) {
	stages := []*entity.PipelineStage{
		{ID: "A", Name: "Lead", Position: 1, IsDefault: true},
		{ID: "B", Name: "Contact Made", Position: 2},
	}
	customers := []*entity.Customer{
		{ID: "1", FirstName: "Ana", LastName: "Gómez", PipelineStageID: strPtr("A")},
		{ID: "2", FirstName: "Luis", LastName: "Pérez", PipelineStageID: strPtr("B")},
		{ID: "3", FirstName: "Sara", LastName: "Ruiz", PipelineStageID: strPtr("A")},
	}

	board := pipeline.BoardFor("board", stages, customers)

	require.Len(t, board, 2)
	assert.Equal(t, "A", board[0].ID)
	assert.Equal(t, []string{"1", "3"}, cardIDs(board[0]))
	assert.Equal(t, "B", board[1].ID)
	assert.Equal(t, []string{"2"}, cardIDs(board[1]))
	assert.Equal(t, "Ana Gómez", board[0].Records[0].Title)
}

func TestBoardFor_IdentificadoresEstables(t *testing.T) {
	stages := []*entity.PipelineStage{{ID: "s1", Name: "Lead"}, {ID: "s2", Name: "Customer"}}

	board := pipeline.BoardFor("kanban", stages, nil)

	require.Len(t, board, 2)
	for _, col := range board {
		assert.Equal(t, "kanban", col.Group, "todas las columnas comparten el grupo de arrastre")
		assert.NotNil(t, col.Records, "una columna vacía serializa como lista vacía")
		assert.Empty(t, col.Records)
	}
	assert.Equal(t, "kanban-s1", board[0].ColumnKey)
	assert.Equal(t, "kanban-s2", board[1].ColumnKey)
}

func TestBoardFor_IgnoraClientesSinEtapaConocida(t *testing.T) {
	stages := []*entity.PipelineStage{{ID: "A", Name: "Lead"}}
	customers := []*entity.Customer{
		{ID: "1", PipelineStageID: nil},
		{ID: "2", PipelineStageID: strPtr("borrada")},
		{ID: "3", PipelineStageID: strPtr("A")},
	}

	board := pipeline.BoardFor("g", stages, customers)

	assert.Equal(t, []string{"3"}, cardIDs(board[0]))
}

func TestBoardFor_OrdenDeColumnasSigueAlRegistro(t *testing.T) {
	stages := []*entity.PipelineStage{{ID: "C", Position: 1}, {ID: "A", Position: 2}, {ID: "B", Position: 3}}

	board := pipeline.BoardFor("g", stages, nil)

	assert.Equal(t, "C", board[0].ID)
	assert.Equal(t, "A", board[1].ID)
	assert.Equal(t, "B", board[2].ID)
}
