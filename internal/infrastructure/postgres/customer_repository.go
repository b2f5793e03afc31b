package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, first_name, last_name, email, phone_number, description,
	lead_source_id, pipeline_stage_id, employee_id, created_at, updated_at, deleted_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.Description,
		&c.LeadSourceID, &c.PipelineStageID, &c.EmployeeID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.Description,
		c.LeadSourceID, c.PipelineStageID, c.EmployeeID, c.CreatedAt, c.UpdatedAt, c.DeletedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID, archivado o no.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update actualiza los datos editables del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
			description = $6, lead_source_id = $7, pipeline_stage_id = $8, employee_id = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
		c.Description, c.LeadSourceID, c.PipelineStageID, c.EmployeeID, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// UpdateStage mueve el cliente a otra etapa.
func (r *CustomerRepo) UpdateStage(ctx context.Context, id, stageID string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET pipeline_stage_id = $2, updated_at = $3 WHERE id = $1`, id, stageID, at)
	if err != nil {
		return fmt.Errorf("update customer stage: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// UpdateEmployee asigna o quita (nil) el empleado responsable.
func (r *CustomerRepo) UpdateEmployee(ctx context.Context, id string, employeeID *string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET employee_id = $2, updated_at = $3 WHERE id = $1`, id, employeeID, at)
	if err != nil {
		return fmt.Errorf("update customer employee: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// SoftDelete archiva el cliente.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE customers SET deleted_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// Restore saca al cliente de archivados.
func (r *CustomerRepo) Restore(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE customers SET deleted_at = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("restore customer: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}

// customerWhere construye la cláusula WHERE del filtro y sus argumentos posicionales.
func customerWhere(f repository.CustomerFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	if f.OnlyDeleted {
		conds[0] = "deleted_at IS NOT NULL"
	}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.StageID != nil {
		conds = append(conds, "pipeline_stage_id = "+arg(*f.StageID))
	}
	if f.EmployeeID != nil {
		conds = append(conds, "employee_id = "+arg(*f.EmployeeID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, "concat_ws(' ', first_name, last_name, email, phone_number) ILIKE "+
			arg("%"+escapeLike(s)+"%"))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List devuelve los clientes del filtro en orden de inserción.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	where, args := customerWhere(f)
	query := `SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY seq`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count total de clientes que cumplen el filtro (ignora Limit/Offset).
func (r *CustomerRepo) Count(ctx context.Context, f repository.CustomerFilter) (int, error) {
	where, args := customerWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountByStage incluye clientes archivados: también bloquean el borrado de la etapa.
func (r *CustomerRepo) CountByStage(ctx context.Context, stageID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers WHERE pipeline_stage_id = $1`, stageID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by stage: %w", err)
	}
	return n, nil
}

// CountByLeadSource clientes (incluidos archivados) que referencian el origen.
func (r *CustomerRepo) CountByLeadSource(ctx context.Context, leadSourceID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers WHERE lead_source_id = $1`, leadSourceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by lead source: %w", err)
	}
	return n, nil
}

// SetTags reemplaza las etiquetas del cliente conservando el orden recibido.
func (r *CustomerRepo) SetTags(ctx context.Context, customerID string, tagIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customer_tag WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("clear customer tags: %w", err)
	}
	for i, id := range tagIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO customer_tag (customer_id, tag_id, position) VALUES ($1, $2, $3)`, customerID, id, i)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: etiqueta %q", domain.ErrNotFound, id)
			}
			return fmt.Errorf("insert customer tag: %w", err)
		}
	}
	return nil
}

// ListTags etiquetas del cliente en el orden en que se asignaron.
func (r *CustomerRepo) ListTags(ctx context.Context, customerID string) ([]*entity.Tag, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.id, t.name, t.color, t.created_at, t.updated_at
		FROM customer_tag ct JOIN tags t ON t.id = ct.tag_id
		WHERE ct.customer_id = $1 ORDER BY ct.position`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer tags: %w", err)
	}
	defer rows.Close()
	list := []*entity.Tag{}
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SetCustomFields reemplaza los valores de campos personalizados del cliente.
func (r *CustomerRepo) SetCustomFields(ctx context.Context, customerID string, values []*entity.CustomFieldValue) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM custom_field_customer WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("clear custom field values: %w", err)
	}
	for _, v := range values {
		_, err := r.q.Exec(ctx, `
			INSERT INTO custom_field_customer (id, customer_id, custom_field_id, value, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			v.ID, customerID, v.CustomFieldID, v.Value, v.CreatedAt, v.UpdatedAt)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrDuplicate
			case isForeignKeyViolation(err):
				return fmt.Errorf("%w: campo %q", domain.ErrNotFound, v.CustomFieldID)
			}
			return fmt.Errorf("insert custom field value: %w", err)
		}
	}
	return nil
}

// ListCustomFields valores del cliente con el nombre del campo resuelto.
func (r *CustomerRepo) ListCustomFields(ctx context.Context, customerID string) ([]*entity.CustomFieldValue, error) {
	rows, err := r.q.Query(ctx, `
		SELECT v.id, v.customer_id, v.custom_field_id, f.name, v.value, v.created_at, v.updated_at
		FROM custom_field_customer v JOIN custom_fields f ON f.id = v.custom_field_id
		WHERE v.customer_id = $1 ORDER BY v.created_at, f.name`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list custom field values: %w", err)
	}
	defer rows.Close()
	list := []*entity.CustomFieldValue{}
	for rows.Next() {
		var v entity.CustomFieldValue
		if err := rows.Scan(&v.ID, &v.CustomerID, &v.CustomFieldID, &v.FieldName, &v.Value, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan custom field value: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
