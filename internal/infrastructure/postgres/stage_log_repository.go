package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.StageLogRepository = (*StageLogRepo)(nil)

const stageLogColumns = `id, customer_id, pipeline_stage_id, employee_id, user_id, notes, created_at`

// StageLogRepo historial customer_pipeline_stages. El orden lo da seq (bigserial), no created_at.
type StageLogRepo struct {
	q Querier
}

// NewStageLogRepository construye el adaptador.
func NewStageLogRepository(q Querier) *StageLogRepo {
	return &StageLogRepo{q: q}
}

// Append inserta una entrada; no hay Update ni Delete.
func (r *StageLogRepo) Append(ctx context.Context, l *entity.StageLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_pipeline_stages (`+stageLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.CustomerID, l.PipelineStageID, l.EmployeeID, l.UserID, l.Notes, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("append stage log: %w", err)
	}
	return nil
}

func (r *StageLogRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.StageLogDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.customer_id, l.pipeline_stage_id, l.employee_id, l.user_id, l.notes, l.created_at,
			s.name, e.name, u.name
		FROM customer_pipeline_stages l
		LEFT JOIN pipeline_stages s ON s.id = l.pipeline_stage_id
		LEFT JOIN users e ON e.id = l.employee_id
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.customer_id = $1
		ORDER BY l.seq`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list stage logs: %w", err)
	}
	defer rows.Close()
	list := []*entity.StageLogDetail{}
	for rows.Next() {
		var d entity.StageLogDetail
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.PipelineStageID, &d.EmployeeID, &d.UserID, &d.Notes, &d.CreatedAt,
			&d.StageName, &d.EmployeeName, &d.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan stage log: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *StageLogRepo) latest(ctx context.Context, customerID, extra string) (*entity.StageLog, error) {
	var l entity.StageLog
	err := r.q.QueryRow(ctx, `
		SELECT `+stageLogColumns+` FROM customer_pipeline_stages
		WHERE customer_id = $1`+extra+`
		ORDER BY seq DESC LIMIT 1`, customerID).Scan(
		&l.ID, &l.CustomerID, &l.PipelineStageID, &l.EmployeeID, &l.UserID, &l.Notes, &l.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest stage log: %w", err)
	}
	return &l, nil
}

func (r *StageLogRepo) Latest(ctx context.Context, customerID string) (*entity.StageLog, error) {
	return r.latest(ctx, customerID, "")
}

func (r *StageLogRepo) LatestWithEmployee(ctx context.Context, customerID string) (*entity.StageLog, error) {
	return r.latest(ctx, customerID, " AND employee_id IS NOT NULL")
}

func (r *StageLogRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM customer_pipeline_stages WHERE customer_id = $1`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stage logs: %w", err)
	}
	return n, nil
}
