package crm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
)

func newTasks(f *fixture) *crm.TaskUseCase {
	return crm.NewTaskUseCase(f.store.Tasks(), f.store.Customers(), f.store.Users(), f.notifier)
}

func TestTasks_EmpleadoSeAsignaASiMismo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := newTasks(f)
	c := f.create(t, admin, "Ana", "Gómez")

	task, err := uc.Create(ctx, employee, dto.CreateTaskRequest{CustomerID: c.ID, Description: "Llamar"})
	require.NoError(t, err)
	require.NotNil(t, task.UserID)
	assert.Equal(t, employee.UserID, *task.UserID)

	_, err = uc.Create(ctx, employee, dto.CreateTaskRequest{CustomerID: c.ID, Description: "x", UserID: strPtr(admin.UserID)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTasks_CompleteAvisa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := newTasks(f)
	c := f.create(t, admin, "Ana", "Gómez")
	task, err := uc.Create(ctx, admin, dto.CreateTaskRequest{CustomerID: c.ID, Description: "Enviar propuesta"})
	require.NoError(t, err)
	f.notifier.Sent = nil

	done, err := uc.Complete(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, ports.NotificationSuccess, f.notifier.Sent[0].Level)
	assert.Equal(t, "Task marked as completed", f.notifier.Sent[0].Title)

	split, err := uc.ForCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, split.Completed, 1)
	assert.Empty(t, split.Incomplete)
}

func TestTasks_EmpleadoNoVeTareasAjenas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := newTasks(f)
	c := f.create(t, admin, "Ana", "Gómez")
	task, err := uc.Create(ctx, admin, dto.CreateTaskRequest{CustomerID: c.ID, Description: "Visita", UserID: strPtr(admin.UserID)})
	require.NoError(t, err)

	_, err = uc.Get(ctx, employee, task.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	list, err := uc.List(ctx, employee, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTasks_OrdenPorVencimiento(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := newTasks(f)
	c := f.create(t, admin, "Ana", "Gómez")
	for _, in := range []dto.CreateTaskRequest{
		{CustomerID: c.ID, Description: "sin fecha"},
		{CustomerID: c.ID, Description: "tarde", DueDate: strPtr("2025-03-10")},
		{CustomerID: c.ID, Description: "pronto", DueDate: strPtr("2025-03-01")},
	} {
		_, err := uc.Create(ctx, admin, in)
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, admin, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"pronto", "tarde", "sin fecha"}, []string{list[0].Description, list[1].Description, list[2].Description})

	_, err = uc.Create(ctx, admin, dto.CreateTaskRequest{CustomerID: c.ID, Description: "x", DueDate: strPtr("10/03/2025")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTasks_CalendarioSinHTMLYFiltradoPorEmpleado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := newTasks(f)
	c := f.create(t, admin, "Ana", "Gómez")
	_, err := uc.Create(ctx, employee, dto.CreateTaskRequest{
		CustomerID: c.ID, Description: "<p>Llamar a <strong>Ana</strong> &amp; socio</p>", DueDate: strPtr("2025-03-05"),
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateTaskRequest{CustomerID: c.ID, Description: "Fuera de rango", DueDate: strPtr("2025-04-05")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateTaskRequest{CustomerID: c.ID, Description: "Del admin", DueDate: strPtr("2025-03-06"), UserID: strPtr(admin.UserID)})
	require.NoError(t, err)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	events, err := uc.Calendar(ctx, employee, start, end)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Llamar a Ana & socio", events[0].Title)
	assert.Equal(t, "2025-03-05", events[0].Start)
	assert.Equal(t, events[0].Start, events[0].End)

	all, err := uc.Calendar(ctx, admin, start, end)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
