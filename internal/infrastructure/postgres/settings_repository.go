package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var (
	_ repository.LeadSourceRepository  = (*LeadSourceRepo)(nil)
	_ repository.TagRepository         = (*TagRepo)(nil)
	_ repository.CustomFieldRepository = (*CustomFieldRepo)(nil)
)

// Catálogos de configuración: orígenes de prospecto, etiquetas y campos personalizados.
// Se listan por nombre.

func queryList[T any](ctx context.Context, q Querier, what, query string, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()
	list := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func queryOne[T any](ctx context.Context, q Querier, what, query, id string, scan func(pgx.Row) (*T, error)) (*T, error) {
	v, err := scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return v, nil
}

func execWrite(ctx context.Context, q Querier, what, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrInUse
		case isInvalidID(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// LeadSourceRepo tabla lead_sources.
type LeadSourceRepo struct{ q Querier }

func NewLeadSourceRepository(q Querier) *LeadSourceRepo { return &LeadSourceRepo{q: q} }

func scanLeadSource(row pgx.Row) (*entity.LeadSource, error) {
	var v entity.LeadSource
	if err := row.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *LeadSourceRepo) Create(ctx context.Context, v *entity.LeadSource) error {
	return execWrite(ctx, r.q, "insert lead source",
		`INSERT INTO lead_sources (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.Name, v.CreatedAt, v.UpdatedAt)
}

func (r *LeadSourceRepo) GetByID(ctx context.Context, id string) (*entity.LeadSource, error) {
	return queryOne(ctx, r.q, "lead source",
		`SELECT id, name, created_at, updated_at FROM lead_sources WHERE id = $1`, id, scanLeadSource)
}

func (r *LeadSourceRepo) List(ctx context.Context) ([]*entity.LeadSource, error) {
	return queryList(ctx, r.q, "lead sources",
		`SELECT id, name, created_at, updated_at FROM lead_sources ORDER BY name`, scanLeadSource)
}

func (r *LeadSourceRepo) Update(ctx context.Context, v *entity.LeadSource) error {
	return execWrite(ctx, r.q, "update lead source",
		`UPDATE lead_sources SET name = $2, updated_at = $3 WHERE id = $1`, v.ID, v.Name, v.UpdatedAt)
}

// Delete devuelve domain.ErrInUse si algún cliente aún lo referencia.
func (r *LeadSourceRepo) Delete(ctx context.Context, id string) error {
	return execWrite(ctx, r.q, "delete lead source", `DELETE FROM lead_sources WHERE id = $1`, id)
}

// TagRepo tabla tags; al borrar, customer_tag cae en cascada.
type TagRepo struct{ q Querier }

func NewTagRepository(q Querier) *TagRepo { return &TagRepo{q: q} }

func scanTag(row pgx.Row) (*entity.Tag, error) {
	var v entity.Tag
	if err := row.Scan(&v.ID, &v.Name, &v.Color, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *TagRepo) Create(ctx context.Context, v *entity.Tag) error {
	return execWrite(ctx, r.q, "insert tag",
		`INSERT INTO tags (id, name, color, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.Name, v.Color, v.CreatedAt, v.UpdatedAt)
}

func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	return queryOne(ctx, r.q, "tag",
		`SELECT id, name, color, created_at, updated_at FROM tags WHERE id = $1`, id, scanTag)
}

func (r *TagRepo) List(ctx context.Context) ([]*entity.Tag, error) {
	return queryList(ctx, r.q, "tags",
		`SELECT id, name, color, created_at, updated_at FROM tags ORDER BY name`, scanTag)
}

func (r *TagRepo) Update(ctx context.Context, v *entity.Tag) error {
	return execWrite(ctx, r.q, "update tag",
		`UPDATE tags SET name = $2, color = $3, updated_at = $4 WHERE id = $1`, v.ID, v.Name, v.Color, v.UpdatedAt)
}

func (r *TagRepo) Delete(ctx context.Context, id string) error {
	return execWrite(ctx, r.q, "delete tag", `DELETE FROM tags WHERE id = $1`, id)
}

// CustomFieldRepo tabla custom_fields; los valores por cliente caen en cascada.
type CustomFieldRepo struct{ q Querier }

func NewCustomFieldRepository(q Querier) *CustomFieldRepo { return &CustomFieldRepo{q: q} }

func scanCustomField(row pgx.Row) (*entity.CustomField, error) {
	var v entity.CustomField
	if err := row.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *CustomFieldRepo) Create(ctx context.Context, v *entity.CustomField) error {
	return execWrite(ctx, r.q, "insert custom field",
		`INSERT INTO custom_fields (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.Name, v.CreatedAt, v.UpdatedAt)
}

func (r *CustomFieldRepo) GetByID(ctx context.Context, id string) (*entity.CustomField, error) {
	return queryOne(ctx, r.q, "custom field",
		`SELECT id, name, created_at, updated_at FROM custom_fields WHERE id = $1`, id, scanCustomField)
}

func (r *CustomFieldRepo) List(ctx context.Context) ([]*entity.CustomField, error) {
	return queryList(ctx, r.q, "custom fields",
		`SELECT id, name, created_at, updated_at FROM custom_fields ORDER BY name`, scanCustomField)
}

func (r *CustomFieldRepo) Update(ctx context.Context, v *entity.CustomField) error {
	return execWrite(ctx, r.q, "update custom field",
		`UPDATE custom_fields SET name = $2, updated_at = $3 WHERE id = $1`, v.ID, v.Name, v.UpdatedAt)
}

func (r *CustomFieldRepo) Delete(ctx context.Context, id string) error {
	return execWrite(ctx, r.q, "delete custom field", `DELETE FROM custom_fields WHERE id = $1`, id)
}
