package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.PipelineStageRepository = (*PipelineStageRepo)(nil)

const stageColumns = `id, name, position, is_default, created_at, updated_at`

// PipelineStageRepo implementación de PipelineStageRepository (pool o tx).
type PipelineStageRepo struct {
	q Querier
}

// NewPipelineStageRepository construye el adaptador.
func NewPipelineStageRepository(q Querier) *PipelineStageRepo {
	return &PipelineStageRepo{q: q}
}

func scanStage(row pgx.Row) (*entity.PipelineStage, error) {
	var s entity.PipelineStage
	if err := row.Scan(&s.ID, &s.Name, &s.Position, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PipelineStageRepo) one(ctx context.Context, what, query string, args ...any) (*entity.PipelineStage, error) {
	s, err := scanStage(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return s, nil
}

func (r *PipelineStageRepo) exec(ctx context.Context, what, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// Create inserta la etapa. La posición ya viene calculada por el caso de uso.
func (r *PipelineStageRepo) Create(ctx context.Context, s *entity.PipelineStage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pipeline_stages (`+stageColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Position, s.IsDefault, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pipeline stage: %w", err)
	}
	return nil
}

func (r *PipelineStageRepo) GetByID(ctx context.Context, id string) (*entity.PipelineStage, error) {
	return r.one(ctx, "get pipeline stage", `SELECT `+stageColumns+` FROM pipeline_stages WHERE id = $1`, id)
}

func (r *PipelineStageRepo) List(ctx context.Context) ([]*entity.PipelineStage, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stageColumns+` FROM pipeline_stages ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	defer rows.Close()
	list := []*entity.PipelineStage{}
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pipeline stage: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PipelineStageRepo) GetDefault(ctx context.Context) (*entity.PipelineStage, error) {
	return r.one(ctx, "get default stage", `SELECT `+stageColumns+` FROM pipeline_stages WHERE is_default LIMIT 1`)
}

func (r *PipelineStageRepo) NextAfter(ctx context.Context, position int) (*entity.PipelineStage, error) {
	return r.one(ctx, "next pipeline stage", `
		SELECT `+stageColumns+` FROM pipeline_stages
		WHERE position > $1 ORDER BY position LIMIT 1`, position)
}

// MaxPosition 0 si no hay etapas.
func (r *PipelineStageRepo) MaxPosition(ctx context.Context) (int, error) {
	var top int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM pipeline_stages`).Scan(&top); err != nil {
		return 0, fmt.Errorf("max stage position: %w", err)
	}
	return top, nil
}

func (r *PipelineStageRepo) Rename(ctx context.Context, id, name string) error {
	return r.exec(ctx, "rename pipeline stage",
		`UPDATE pipeline_stages SET name = $2, updated_at = now() WHERE id = $1`, id, name)
}

// UpdatePosition la unicidad de position se verifica al commit (constraint diferida).
func (r *PipelineStageRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	return r.exec(ctx, "update stage position",
		`UPDATE pipeline_stages SET position = $2, updated_at = now() WHERE id = $1`, id, position)
}

func (r *PipelineStageRepo) ClearDefault(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `UPDATE pipeline_stages SET is_default = FALSE, updated_at = now() WHERE is_default`); err != nil {
		return fmt.Errorf("clear default stage: %w", err)
	}
	return nil
}

func (r *PipelineStageRepo) MarkDefault(ctx context.Context, id string) error {
	return r.exec(ctx, "mark default stage",
		`UPDATE pipeline_stages SET is_default = TRUE, updated_at = now() WHERE id = $1`, id)
}

func (r *PipelineStageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pipeline_stages WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete pipeline stage: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}
