package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, customer_id, user_id, description, due_date, is_completed, created_at, updated_at`

// TaskRepo tareas de seguimiento.
type TaskRepo struct {
	q Querier
}

func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.CustomerID, &t.UserID, &t.Description, &t.DueDate, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CustomerID, t.UserID, t.Description, t.DueDate, t.IsCompleted, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	return queryOne(ctx, r.q, "task", `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id, scanTask)
}

func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks SET customer_id = $2, user_id = $3, description = $4, due_date = $5,
			is_completed = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.CustomerID, t.UserID, t.Description, t.DueDate, t.IsCompleted, t.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente o usuario inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update task: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// List filtra y ordena por vencimiento (sin fecha al final) y luego por creación descendente.
func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CustomerID != nil {
		add("customer_id = $%d", *f.CustomerID)
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.Completed != nil {
		add("is_completed = $%d", *f.Completed)
	}
	if f.DueFrom != nil {
		add("due_date >= $%d", *f.DueFrom)
	}
	if f.DueTo != nil {
		add("due_date <= $%d", *f.DueTo)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_date ASC NULLS LAST, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	list := []*entity.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}
