//go:build integration

package postgres

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// Ejecutar con: CRM_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres
// La base se vacía en cada test.
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("CRM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CRM_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool, logger.New(logger.Config{Env: "test", Output: io.Discard}))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE customer_pipeline_stages, customers, pipeline_stages, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func seedStages(t *testing.T, pool *pgxpool.Pool, names ...string) []*entity.PipelineStage {
	t.Helper()
	ctx := context.Background()
	repo := NewPipelineStageRepository(pool)
	now := time.Now().UTC()
	out := make([]*entity.PipelineStage, 0, len(names))
	for i, n := range names {
		st := &entity.PipelineStage{ID: uuid.NewString(), Name: n, Position: i + 1, IsDefault: i == 0, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Create(ctx, st))
		out = append(out, st)
	}
	return out
}

func TestIntegracion_UnaSolaEtapaPorDefecto(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	stages := seedStages(t, pool, "Lead", "Contact Made")
	runner := NewTxRunner(pool)

	// Sin limpiar antes, el índice parcial rechaza la segunda marca.
	err := runner.Run(ctx, func(r pipeline.Repos) error {
		return r.Stages.MarkDefault(ctx, stages[1].ID)
	})
	require.Error(t, err)

	require.NoError(t, runner.Run(ctx, func(r pipeline.Repos) error {
		if err := r.Stages.ClearDefault(ctx); err != nil {
			return err
		}
		return r.Stages.MarkDefault(ctx, stages[1].ID)
	}))

	def, err := NewPipelineStageRepository(pool).GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, stages[1].ID, def.ID)
}

func TestIntegracion_ReordenarConPosicionDiferida(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	stages := seedStages(t, pool, "A", "B", "C")
	runner := NewTxRunner(pool)

	// Intercambio dentro de una transacción: la unicidad se comprueba al commit.
	require.NoError(t, runner.Run(ctx, func(r pipeline.Repos) error {
		if err := r.Stages.UpdatePosition(ctx, stages[0].ID, 3); err != nil {
			return err
		}
		return r.Stages.UpdatePosition(ctx, stages[2].ID, 1)
	}))

	list, err := NewPipelineStageRepository(pool).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{list[0].Name, list[1].Name, list[2].Name})

	// Una posición repetida que sobrevive al commit falla.
	err = runner.Run(ctx, func(r pipeline.Repos) error {
		return r.Stages.UpdatePosition(ctx, stages[1].ID, 1)
	})
	assert.Error(t, err)
}

func TestIntegracion_HistorialOrdenadoPorSeq(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	stages := seedStages(t, pool, "Lead")
	now := time.Now().UTC()

	emp := &entity.User{ID: uuid.NewString(), Email: "eva@crm.test", PasswordHash: "x", Name: "Eva", Role: entity.RoleEmployee, Status: "active", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewUserRepository(pool).Create(ctx, emp))
	cust := &entity.Customer{ID: uuid.NewString(), FirstName: "Ana", PipelineStageID: &stages[0].ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewCustomerRepository(pool).Create(ctx, cust))

	logs := NewStageLogRepository(pool)
	entries := []*entity.StageLog{
		{ID: uuid.NewString(), CustomerID: cust.ID, PipelineStageID: &stages[0].ID, CreatedAt: now},
		{ID: uuid.NewString(), CustomerID: cust.ID, EmployeeID: &emp.ID, CreatedAt: now},
		{ID: uuid.NewString(), CustomerID: cust.ID, PipelineStageID: &stages[0].ID, CreatedAt: now},
	}
	for _, l := range entries {
		require.NoError(t, logs.Append(ctx, l))
	}

	latest, err := logs.Latest(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, entries[2].ID, latest.ID, "mismo created_at: desempata seq")

	withEmp, err := logs.LatestWithEmployee(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, entries[1].ID, withEmp.ID)

	detail, err := logs.ListByCustomer(ctx, cust.ID)
	require.NoError(t, err)
	require.Len(t, detail, 3)
	assert.Equal(t, entries[0].ID, detail[0].ID)
	require.NotNil(t, detail[1].EmployeeName)
	assert.Equal(t, "Eva", *detail[1].EmployeeName)

	// La etapa referenciada por el cliente no se puede borrar.
	assert.ErrorIs(t, NewPipelineStageRepository(pool).Delete(ctx, stages[0].ID), domain.ErrInUse)
}

func TestIntegracion_IDMalFormado(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()

	c, err := NewCustomerRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, c)

	st, err := NewPipelineStageRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, st)

	assert.ErrorIs(t, NewPipelineStageRepository(pool).Rename(ctx, "no-es-uuid", "X"), domain.ErrNotFound)
}
