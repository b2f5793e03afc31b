package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain"
)

type recordedQuery struct {
	sql  string
	args []any
}

// recordingQuerier guarda cada sentencia y responde con err (o filas afectadas en Exec).
type recordingQuerier struct {
	calls    []recordedQuery
	err      error
	affected int64
}

func (q *recordingQuerier) record(sql string, args []any) {
	q.calls = append(q.calls, recordedQuery{sql: sql, args: args})
}

func (q *recordingQuerier) last() recordedQuery {
	return q.calls[len(q.calls)-1]
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	if q.err != nil {
		return pgconn.CommandTag{}, q.err
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", q.affected)), nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	if q.err != nil {
		return nil, q.err
	}
	return nil, errors.New("recordingQuerier: Query sin error no soportado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	return errRow{err: q.err}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error {
	if r.err != nil {
		return r.err
	}
	return pgx.ErrNoRows
}

func pgErr(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "rechazado"})
}

func TestStageLogRepo_UltimaEntradaPorSeq(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewStageLogRepository(q)
	ctx := context.Background()

	l, err := repo.Latest(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.Contains(t, q.last().sql, "ORDER BY seq DESC LIMIT 1")
	assert.NotContains(t, q.last().sql, "employee_id IS NOT NULL")
	assert.Equal(t, []any{"c1"}, q.last().args)

	l, err = repo.LatestWithEmployee(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.Contains(t, q.last().sql, "WHERE customer_id = $1 AND employee_id IS NOT NULL")
	assert.Contains(t, q.last().sql, "ORDER BY seq DESC LIMIT 1")
}

func TestStageLogRepo_IDMalFormadoEsAusente(t *testing.T) {
	q := &recordingQuerier{err: pgErr(codeInvalidText)}
	l, err := NewStageLogRepository(q).Latest(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestPipelineStageRepo_DefaultEnDosPasos(t *testing.T) {
	q := &recordingQuerier{affected: 1}
	repo := NewPipelineStageRepository(q)
	ctx := context.Background()

	require.NoError(t, repo.ClearDefault(ctx))
	assert.Contains(t, q.last().sql, "SET is_default = FALSE")
	assert.Contains(t, q.last().sql, "WHERE is_default")
	assert.Empty(t, q.last().args, "se limpian todas las marcadas, sin importar el id")

	require.NoError(t, repo.MarkDefault(ctx, "st-2"))
	assert.Contains(t, q.last().sql, "SET is_default = TRUE")
	assert.Equal(t, []any{"st-2"}, q.last().args)

	q.affected = 0
	assert.ErrorIs(t, repo.MarkDefault(ctx, "st-9"), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePosition(ctx, "st-9", 1), domain.ErrNotFound)
}

func TestPipelineStageRepo_TraduceCodigosDePostgres(t *testing.T) {
	ctx := context.Background()

	inUse := NewPipelineStageRepository(&recordingQuerier{err: pgErr(codeForeignKeyViolation)})
	assert.ErrorIs(t, inUse.Delete(ctx, "st-1"), domain.ErrInUse)

	malformed := NewPipelineStageRepository(&recordingQuerier{err: pgErr(codeInvalidText)})
	st, err := malformed.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, st)
	assert.ErrorIs(t, malformed.Rename(ctx, "x", "Nuevo"), domain.ErrNotFound)

	// Solo cuenta el código SQLSTATE, no el texto del error.
	plain := NewPipelineStageRepository(&recordingQuerier{err: errors.New("conexión cerrada tras 23503 intentos")})
	err = plain.Delete(ctx, "st-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInUse)
}

func TestHasCode_SoloPgError(t *testing.T) {
	assert.True(t, isUniqueViolation(pgErr(codeUniqueViolation)))
	assert.False(t, isUniqueViolation(errors.New("duplicate key 23505")))
	assert.False(t, isForeignKeyViolation(pgErr(codeUniqueViolation)))
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(pgErr(codeInvalidText)))
	assert.False(t, isNoRows(errors.New("22P02")))
}

func TestIDMalFormado_OtrosRepositorios(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{err: pgErr(codeInvalidText)}

	c, err := NewCustomerRepository(q).GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, c)

	quote, err := NewQuoteRepository(q).GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, quote)

	task, err := NewTaskRepository(q).GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, task)

	assert.ErrorIs(t, NewTagRepository(q).Delete(ctx, "x"), domain.ErrNotFound)
}
