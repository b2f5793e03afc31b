package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo invitaciones pendientes (una por email).
type InvitationRepo struct {
	q Querier
}

func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO invitations (id, email, created_at) VALUES ($1, $2, $3)`,
		inv.ID, inv.Email, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) GetByID(ctx context.Context, id string) (*entity.Invitation, error) {
	return r.one(ctx, `SELECT id, email, created_at FROM invitations WHERE id = $1`, id)
}

func (r *InvitationRepo) GetByEmail(ctx context.Context, email string) (*entity.Invitation, error) {
	return r.one(ctx, `SELECT id, email, created_at FROM invitations WHERE lower(email) = lower($1)`, email)
}

func (r *InvitationRepo) one(ctx context.Context, query, arg string) (*entity.Invitation, error) {
	var inv entity.Invitation
	if err := r.q.QueryRow(ctx, query, arg).Scan(&inv.ID, &inv.Email, &inv.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

func (r *InvitationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return affectedOrNotFound(tag, domain.ErrNotFound)
}
