package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// PipelineStageRepository define el puerto de persistencia para PipelineStage.
// El flag is_default solo se escribe con ClearDefault/MarkDefault, siempre dentro de una transacción.
type PipelineStageRepository interface {
	Create(ctx context.Context, stage *entity.PipelineStage) error
	GetByID(ctx context.Context, id string) (*entity.PipelineStage, error)
	// List ordena por position ascendente.
	List(ctx context.Context) ([]*entity.PipelineStage, error)
	GetDefault(ctx context.Context) (*entity.PipelineStage, error)
	// NextAfter primera etapa con position mayor que la indicada; nil si no hay.
	NextAfter(ctx context.Context, position int) (*entity.PipelineStage, error)
	MaxPosition(ctx context.Context) (int, error)
	Rename(ctx context.Context, id, name string) error
	UpdatePosition(ctx context.Context, id string, position int) error
	ClearDefault(ctx context.Context) error
	MarkDefault(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
