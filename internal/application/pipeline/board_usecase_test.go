package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

func recordIDs(col dto.BoardColumnResponse) []string {
	ids := []string{}
	for _, r := range col.Records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBoard_ColumnasYArchivadosExcluidos(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()
	c1 := f.addCustomer(t, "c1", "Ana", "Gómez")
	c2 := f.addCustomer(t, "c2", "Luis", "Pérez")
	c3 := f.addCustomer(t, "c3", "Marta", "Ruiz")
	_, err := f.transitions.ChangeStage(ctx, c2.ID, f.stages[1].ID, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.store.Customers().SoftDelete(ctx, c3.ID, c3.CreatedAt))

	uc := pipeline.NewBoardUseCase(f.store.Stages(), f.store.Customers(), f.transitions)
	cols, err := uc.Board(ctx, nil)
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, []string{c1.ID}, recordIDs(cols[0]))
	assert.Equal(t, []string{c2.ID}, recordIDs(cols[1]))
	assert.Equal(t, "Luis Pérez", cols[1].Records[0].Title)
	assert.Equal(t, pipeline.BoardGroup+"-"+f.stages[1].ID, cols[1].ColumnKey)
	assert.Equal(t, pipeline.BoardGroup, cols[0].Group)
}

func TestBoard_MoveEquivaleAChangeStage(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()
	c := f.addCustomer(t, "c1", "Ana", "Gómez")
	uc := pipeline.NewBoardUseCase(f.store.Stages(), f.store.Customers(), f.transitions)

	entry, err := uc.Move(ctx, dto.Actor{UserID: "u1", Role: entity.RoleAdmin}, dto.BoardMoveRequest{CustomerID: c.ID, StageID: f.stages[1].ID})
	require.NoError(t, err)
	assert.Nil(t, entry.Notes)

	cols, err := uc.Board(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, cols[0].Records)
	assert.Equal(t, []string{c.ID}, recordIDs(cols[1]))
	assert.Len(t, f.logsOf(c.ID), 2)

	_, err = uc.Move(ctx, dto.SystemActor, dto.BoardMoveRequest{CustomerID: c.ID, StageID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBoard_SoloClientesDelEmpleado(t *testing.T) {
	f := newFixture(t, "Lead")
	ctx := context.Background()
	f.addUser(t, "e1", "Eva", "employee")
	c1 := f.addCustomer(t, "c1", "Ana", "Gómez")
	f.addCustomer(t, "c2", "Luis", "Pérez")
	_, err := f.transitions.ChangeEmployee(ctx, c1.ID, strPtr("e1"), nil)
	require.NoError(t, err)

	uc := pipeline.NewBoardUseCase(f.store.Stages(), f.store.Customers(), f.transitions)
	cols, err := uc.Board(ctx, strPtr("e1"))
	require.NoError(t, err)
	assert.Equal(t, []string{c1.ID}, recordIDs(cols[0]))
}

func TestBoard_EmpleadoSoloMueveSusClientes(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()
	f.addUser(t, "e1", "Eva", entity.RoleEmployee)
	own := f.addCustomer(t, "c1", "Ana", "Gómez")
	other := f.addCustomer(t, "c2", "Luis", "Pérez")
	_, err := f.transitions.ChangeEmployee(ctx, own.ID, strPtr("e1"), nil)
	require.NoError(t, err)

	uc := pipeline.NewBoardUseCase(f.store.Stages(), f.store.Customers(), f.transitions)
	eva := dto.Actor{UserID: "e1", Role: entity.RoleEmployee}

	_, err = uc.Move(ctx, eva, dto.BoardMoveRequest{CustomerID: other.ID, StageID: f.stages[1].ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, f.logsOf(other.ID), 1, "un movimiento rechazado no deja rastro")

	_, err = uc.Move(ctx, eva, dto.BoardMoveRequest{CustomerID: "no-existe", StageID: f.stages[1].ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entry, err := uc.Move(ctx, eva, dto.BoardMoveRequest{CustomerID: own.ID, StageID: f.stages[1].ID})
	require.NoError(t, err)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "e1", *entry.UserID)
}
