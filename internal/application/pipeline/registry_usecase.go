package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// RegistryUseCase registro ordenado de etapas del embudo.
// Es el único punto que escribe is_default: SetDefault limpia y marca dentro de una transacción.
type RegistryUseCase struct {
	stages   repository.PipelineStageRepository
	tx       TxRunner
	notifier ports.Notifier
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(stages repository.PipelineStageRepository, tx TxRunner, notifier ports.Notifier) *RegistryUseCase {
	return &RegistryUseCase{stages: stages, tx: tx, notifier: notifier}
}

// List devuelve las etapas ordenadas por position ascendente.
func (uc *RegistryUseCase) List(ctx context.Context) ([]*entity.PipelineStage, error) {
	return uc.stages.List(ctx)
}

// Default devuelve la etapa por defecto. ErrNotFound si no existe ninguna.
func (uc *RegistryUseCase) Default(ctx context.Context) (*entity.PipelineStage, error) {
	stage, err := uc.stages.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}
	return stage, nil
}

// Create agrega una etapa al final (position = máximo + 1).
// Si todavía no hay etapa por defecto, la nueva pasa a serlo.
func (uc *RegistryUseCase) Create(ctx context.Context, name string) (*entity.PipelineStage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var stage *entity.PipelineStage
	err := uc.tx.Run(ctx, func(r Repos) error {
		maxPos, err := r.Stages.MaxPosition(ctx)
		if err != nil {
			return err
		}
		current, err := r.Stages.GetDefault(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		stage = &entity.PipelineStage{
			ID:        uuid.New().String(),
			Name:      name,
			Position:  maxPos + 1,
			IsDefault: current == nil,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return r.Stages.Create(ctx, stage)
	})
	if err != nil {
		return nil, err
	}
	return stage, nil
}

// Rename cambia el nombre de una etapa.
func (uc *RegistryUseCase) Rename(ctx context.Context, id, name string) (*entity.PipelineStage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	stage, err := uc.stages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.stages.Rename(ctx, id, name); err != nil {
		return nil, err
	}
	stage.Name = name
	return stage, nil
}

// SetDefault marca la etapa como la única por defecto. Limpiar y marcar ocurren en la misma
// transacción: ningún lector ve cero o dos etapas por defecto. Idempotente.
func (uc *RegistryUseCase) SetDefault(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r Repos) error {
		stage, err := r.Stages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		if err := r.Stages.ClearDefault(ctx); err != nil {
			return err
		}
		return r.Stages.MarkDefault(ctx, id)
	})
}

// Delete elimina una etapa sin clientes. Las posiciones del resto no cambian (se permiten huecos).
//
// Errores:
//   - domain.ErrNotFound     si la etapa no existe.
//   - domain.ErrInUse        si algún cliente la referencia (se avisa al actor, no se borra nada).
//   - domain.ErrDefaultStage si es la etapa por defecto y quedan otras.
func (uc *RegistryUseCase) Delete(ctx context.Context, actor *string, id string) error {
	var name string
	err := uc.tx.Run(ctx, func(r Repos) error {
		stage, err := r.Stages.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		name = stage.Name
		n, err := r.Customers.CountByStage(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrInUse
		}
		if stage.IsDefault {
			all, err := r.Stages.List(ctx)
			if err != nil {
				return err
			}
			if len(all) > 1 {
				return domain.ErrDefaultStage
			}
		}
		return r.Stages.Delete(ctx, id)
	})
	switch {
	case err == nil:
		uc.notifier.Notify(ctx, ports.Notification{
			UserID: actor, Level: ports.NotificationSuccess,
			Title: "Etapa eliminada", Body: fmt.Sprintf("La etapa %q fue eliminada.", name),
		})
	case errors.Is(err, domain.ErrInUse):
		uc.notifier.Notify(ctx, ports.Notification{
			UserID: actor, Level: ports.NotificationWarning,
			Title: "Etapa en uso", Body: fmt.Sprintf("La etapa %q tiene clientes asignados.", name),
		})
	}
	return err
}

// Reorder reescribe las posiciones 1..n siguiendo el orden recibido. ids debe contener
// exactamente todas las etapas una vez; is_default no se toca.
func (uc *RegistryUseCase) Reorder(ctx context.Context, ids []string) ([]*entity.PipelineStage, error) {
	var out []*entity.PipelineStage
	err := uc.tx.Run(ctx, func(r Repos) error {
		stages, err := r.Stages.List(ctx)
		if err != nil {
			return err
		}
		if len(ids) != len(stages) {
			return fmt.Errorf("%w: se esperaban %d etapas, llegaron %d", domain.ErrInvalidInput, len(stages), len(ids))
		}
		byID := make(map[string]*entity.PipelineStage, len(stages))
		for _, s := range stages {
			byID[s.ID] = s
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if _, ok := byID[id]; !ok || seen[id] {
				return fmt.Errorf("%w: etapa %q desconocida o repetida", domain.ErrInvalidInput, id)
			}
			seen[id] = true
		}
		out = make([]*entity.PipelineStage, 0, len(ids))
		for i, id := range ids {
			if err := r.Stages.UpdatePosition(ctx, id, i+1); err != nil {
				return err
			}
			s := byID[id]
			s.Position = i + 1
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextStage sugiere la etapa siguiente (por position) a la indicada; nil si es la última.
func (uc *RegistryUseCase) NextStage(ctx context.Context, currentID string) (*entity.PipelineStage, error) {
	current, err := uc.stages.GetByID(ctx, currentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stages.NextAfter(ctx, current.Position)
}

// ToStageResponse convierte la entidad a DTO.
func ToStageResponse(s *entity.PipelineStage) *dto.StageResponse {
	if s == nil {
		return nil
	}
	return &dto.StageResponse{
		ID:        s.ID,
		Name:      s.Name,
		Position:  s.Position,
		IsDefault: s.IsDefault,
		CreatedAt: s.CreatedAt,
	}
}

// ToStageResponses convierte una lista de etapas.
func ToStageResponses(list []*entity.PipelineStage) []*dto.StageResponse {
	out := make([]*dto.StageResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToStageResponse(s))
	}
	return out
}
