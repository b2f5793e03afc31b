package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// LeadSourceRepository puerto de persistencia para LeadSource.
type LeadSourceRepository interface {
	Create(ctx context.Context, ls *entity.LeadSource) error
	GetByID(ctx context.Context, id string) (*entity.LeadSource, error)
	List(ctx context.Context) ([]*entity.LeadSource, error)
	Update(ctx context.Context, ls *entity.LeadSource) error
	Delete(ctx context.Context, id string) error
}

// TagRepository puerto de persistencia para Tag.
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id string) error
}

// CustomFieldRepository puerto de persistencia para CustomField.
type CustomFieldRepository interface {
	Create(ctx context.Context, cf *entity.CustomField) error
	GetByID(ctx context.Context, id string) (*entity.CustomField, error)
	List(ctx context.Context) ([]*entity.CustomField, error)
	Update(ctx context.Context, cf *entity.CustomField) error
	Delete(ctx context.Context, id string) error
}
