package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// InvitationRepository puerto de persistencia para invitaciones de equipo.
type InvitationRepository interface {
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByID(ctx context.Context, id string) (*entity.Invitation, error)
	GetByEmail(ctx context.Context, email string) (*entity.Invitation, error)
	Delete(ctx context.Context, id string) error
}
