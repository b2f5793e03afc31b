package crm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
)

func TestCustomerCreate_EtapaPorDefectoYUnaEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.registry.SetDefault(ctx, f.stages[1].ID))

	c := f.create(t, admin, "Ana", "Gómez")

	require.NotNil(t, c.PipelineStageID)
	assert.Equal(t, f.stages[1].ID, *c.PipelineStageID)
	n, err := f.store.Logs().CountByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCustomerCreate_EtapaExplicita(t *testing.T) {
	f := newFixture(t)
	c, err := f.customers.Create(context.Background(), admin, dto.CreateCustomerRequest{
		FirstName: "Ana", PipelineStageID: strPtr(f.stages[2].ID),
	})
	require.NoError(t, err)
	assert.Equal(t, f.stages[2].ID, *c.PipelineStageID)
}

func TestCustomerCreate_SinEtapaPorDefecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, s := range f.stages[1:] {
		require.NoError(t, f.registry.Delete(ctx, nil, s.ID))
	}
	require.NoError(t, f.registry.Delete(ctx, nil, f.stages[0].ID))

	_, err := f.customers.Create(ctx, admin, dto.CreateCustomerRequest{FirstName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.StageLogs())
}

func TestCustomerCreate_ReferenciasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.customers.Create(ctx, admin, dto.CreateCustomerRequest{FirstName: "Ana", LeadSourceID: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.customers.Create(ctx, admin, dto.CreateCustomerRequest{FirstName: "Ana", EmployeeID: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.customers.Create(ctx, admin, dto.CreateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	page, err := f.customers.List(ctx, admin, crm.TabAll, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items, "una página vacía serializa []")
}

func TestCustomerCreate_EmpleadoQuedaAsignado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.create(t, employee, "Ana", "Gómez")
	got, err := f.customers.Get(ctx, admin, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, employee.UserID, *got.EmployeeID)
	assert.Nil(t, c.EmployeeID)

	_, err = f.customers.Create(ctx, employee, dto.CreateCustomerRequest{FirstName: "Luis", EmployeeID: strPtr(admin.UserID)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCustomerCreate_EtiquetasYCampos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tag, err := f.settings.CreateTag(ctx, dto.TagRequest{Name: "VIP", Color: "#ff0000"})
	require.NoError(t, err)
	cf, err := f.settings.CreateCustomField(ctx, dto.NameRequest{Name: "Cumpleaños"})
	require.NoError(t, err)

	c, err := f.customers.Create(ctx, admin, dto.CreateCustomerRequest{
		FirstName:    "Ana",
		TagIDs:       []string{tag.ID},
		CustomFields: []dto.CustomFieldValueRequest{{CustomFieldID: cf.ID, Value: "01-02"}},
	})
	require.NoError(t, err)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "VIP", c.Tags[0].Name)
	require.Len(t, c.CustomFields, 1)
	assert.Equal(t, "Cumpleaños", c.CustomFields[0].Name)

	_, err = f.customers.Create(ctx, admin, dto.CreateCustomerRequest{
		FirstName: "Luis",
		CustomFields: []dto.CustomFieldValueRequest{
			{CustomFieldID: cf.ID, Value: "a"}, {CustomFieldID: cf.ID, Value: "b"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCustomerUpdate_NoTocaEtapa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, admin, "Ana", "Gómez")

	got, err := f.customers.Update(ctx, admin, c.ID, dto.UpdateCustomerRequest{FirstName: "Ana María", LastName: "Gómez", Email: "ana@x.test"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.FirstName)
	assert.Equal(t, *c.PipelineStageID, *got.PipelineStageID)
	n, err := f.store.Logs().CountByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCustomerAssignEmployee_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, admin, "Ana", "Gómez")

	_, err := f.customers.AssignEmployee(ctx, employee, c.ID, strPtr(employee.UserID))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.customers.AssignEmployee(ctx, admin, c.ID, strPtr(employee.UserID))
	require.NoError(t, err)
	assert.Equal(t, employee.UserID, *got.EmployeeID)
}

func TestCustomerDeleteRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.create(t, admin, "Ana", "Gómez")

	assert.ErrorIs(t, f.customers.Restore(ctx, c.ID), domain.ErrNotFound)
	require.NoError(t, f.customers.Delete(ctx, c.ID))
	assert.ErrorIs(t, f.customers.Delete(ctx, c.ID), domain.ErrNotFound)

	archived, err := f.customers.List(ctx, admin, crm.TabArchived, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, archived.Items, 1)
	assert.Equal(t, 1, archived.Total)

	require.NoError(t, f.customers.Restore(ctx, c.ID))
	active, err := f.customers.List(ctx, admin, crm.TabAll, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)
}

func TestCustomerTabs_ContadoresPorEtapa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, admin, "Ana", "Gómez")
	f.create(t, employee, "Luis", "Pérez")
	c3 := f.create(t, admin, "Marta", "Ruiz")
	require.NoError(t, f.customers.Delete(ctx, c3.ID))

	tabs, err := f.customers.Tabs(ctx, employee)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, tab := range tabs {
		counts[tab.Key] = tab.Count
	}
	assert.Equal(t, map[string]int{
		"all": 2, "my": 1, "lead": 2, "contact-made": 0, "proposal-made": 0, "archived": 1,
	}, counts)

	adminTabs, err := f.customers.Tabs(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, adminTabs, len(tabs)-1)
}

func TestCustomerList_PestanaDeEtapaYBusqueda(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, admin, "Ana", "Gómez")
	f.create(t, admin, "Luis", "Pérez")

	page, err := f.customers.List(ctx, admin, "lead", "pér", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Luis", page.Items[0].FirstName)

	_, err = f.customers.List(ctx, admin, "no-existe", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerList_Paginacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		f.create(t, admin, n, "X")
	}

	page, err := f.customers.List(ctx, admin, crm.TabAll, "", dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B", page.Items[0].FirstName)
	assert.Equal(t, 3, page.Total)
	assert.False(t, page.HasMore)

	page, err = f.customers.List(ctx, admin, crm.TabAll, "", dto.PageRequest{Limit: 1, Offset: -4})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset)
	assert.True(t, page.HasMore)

	page, err = f.customers.List(ctx, admin, crm.TabAll, "", dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, page.Limit)
}
