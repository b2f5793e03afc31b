package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

func defaults(stages []*entity.PipelineStage) []string {
	var ids []string
	for _, s := range stages {
		if s.IsDefault {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestRegistry_PrimeraEtapaQuedaPorDefecto(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made", "Won")
	ctx := context.Background()

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{f.stages[0].ID}, defaults(list))
	for i, s := range list {
		assert.Equal(t, i+1, s.Position)
	}
}

func TestRegistry_CreateNombreVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_DefaultSinEtapas(t *testing.T) {
	f := newFixture(t)
	_, err := f.registry.Default(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_SetDefaultUnicaEIdempotente(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()

	require.NoError(t, f.registry.SetDefault(ctx, f.stages[1].ID))
	require.NoError(t, f.registry.SetDefault(ctx, f.stages[1].ID))

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{f.stages[1].ID}, defaults(list))

	def, err := f.registry.Default(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.stages[1].ID, def.ID)
}

func TestRegistry_SetDefaultInexistenteNoCambiaNada(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()

	err := f.registry.SetDefault(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{f.stages[0].ID}, defaults(list))
}

func TestRegistry_DeleteEnUsoNoBorraYAvisa(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()
	c := f.addCustomer(t, "c1", "Ana", "Gómez")
	_, err := f.transitions.ChangeStage(ctx, c.ID, f.stages[1].ID, nil, nil)
	require.NoError(t, err)
	f.notifier.Sent = nil

	err = f.registry.Delete(ctx, strPtr("admin"), f.stages[1].ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, []string{ports.NotificationWarning}, f.notifier.Levels())
}

func TestRegistry_DeleteCuentaClientesArchivados(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()
	c := f.addCustomer(t, "c1", "Ana", "Gómez")
	_, err := f.transitions.ChangeStage(ctx, c.ID, f.stages[1].ID, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.store.Customers().SoftDelete(ctx, c.ID, c.CreatedAt))

	err = f.registry.Delete(ctx, nil, f.stages[1].ID)
	assert.ErrorIs(t, err, domain.ErrInUse)
}

func TestRegistry_DeleteEtapaPorDefecto(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	err := f.registry.Delete(context.Background(), nil, f.stages[0].ID)
	assert.ErrorIs(t, err, domain.ErrDefaultStage)
}

func TestRegistry_DeleteLibreConservaPosiciones(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made", "Won")
	ctx := context.Background()

	require.NoError(t, f.registry.Delete(ctx, nil, f.stages[1].ID))

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Position)
	assert.Equal(t, 3, list[1].Position)
	assert.Equal(t, []string{ports.NotificationSuccess}, f.notifier.Levels())

	err = f.registry.Delete(ctx, nil, f.stages[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_Reorder(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made", "Won")
	ctx := context.Background()
	a, b, c := f.stages[0].ID, f.stages[1].ID, f.stages[2].ID

	out, err := f.registry.Reorder(ctx, []string{c, a, b})
	require.NoError(t, err)
	require.Len(t, out, 3)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{c, a, b}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, []string{a}, defaults(list))
}

func TestRegistry_ReorderIncompletoNoCambiaNada(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made", "Won")
	ctx := context.Background()
	a, b := f.stages[0].ID, f.stages[1].ID

	_, err := f.registry.Reorder(ctx, []string{b, a})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.registry.Reorder(ctx, []string{b, a, a})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, b, list[1].ID)
}

func TestRegistry_NextStage(t *testing.T) {
	f := newFixture(t, "Lead", "Contact Made")
	ctx := context.Background()

	next, err := f.registry.NextStage(ctx, f.stages[0].ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, f.stages[1].ID, next.ID)

	last, err := f.registry.NextStage(ctx, f.stages[1].ID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestRegistry_RenameInexistente(t *testing.T) {
	f := newFixture(t, "Lead")
	_, err := f.registry.Rename(context.Background(), "nope", "Otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	st, err := f.registry.Rename(context.Background(), f.stages[0].ID, " Prospecto ")
	require.NoError(t, err)
	assert.Equal(t, "Prospecto", st.Name)
}

func TestRegistry_DeleteUnicaEtapaPorDefecto(t *testing.T) {
	f := newFixture(t, "Lead")
	ctx := context.Background()

	require.NoError(t, f.registry.Delete(ctx, nil, f.stages[0].ID))

	list, err := f.registry.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
