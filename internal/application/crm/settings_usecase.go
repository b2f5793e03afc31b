package crm

import (
	"context"
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

// SettingsUseCase catálogos de configuración: orígenes, etiquetas y campos personalizados.
type SettingsUseCase struct {
	leadSources  repository.LeadSourceRepository
	tags         repository.TagRepository
	customFields repository.CustomFieldRepository
	customers    repository.CustomerRepository
	notifier     ports.Notifier
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(
	leadSources repository.LeadSourceRepository,
	tags repository.TagRepository,
	customFields repository.CustomFieldRepository,
	customers repository.CustomerRepository,
	notifier ports.Notifier,
) *SettingsUseCase {
	return &SettingsUseCase{
		leadSources:  leadSources,
		tags:         tags,
		customFields: customFields,
		customers:    customers,
		notifier:     notifier,
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	return name, nil
}

// ── Lead sources ──

func (uc *SettingsUseCase) ListLeadSources(ctx context.Context) ([]*dto.LeadSourceResponse, error) {
	list, err := uc.leadSources.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadSourceResponse, 0, len(list))
	for _, ls := range list {
		out = append(out, &dto.LeadSourceResponse{ID: ls.ID, Name: ls.Name})
	}
	return out, nil
}

func (uc *SettingsUseCase) CreateLeadSource(ctx context.Context, in dto.NameRequest) (*dto.LeadSourceResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ls := &entity.LeadSource{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.leadSources.Create(ctx, ls); err != nil {
		return nil, err
	}
	return &dto.LeadSourceResponse{ID: ls.ID, Name: ls.Name}, nil
}

func (uc *SettingsUseCase) UpdateLeadSource(ctx context.Context, id string, in dto.NameRequest) (*dto.LeadSourceResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	ls, err := uc.leadSources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ls == nil {
		return nil, domain.ErrNotFound
	}
	ls.Name = name
	ls.UpdatedAt = time.Now().UTC()
	if err := uc.leadSources.Update(ctx, ls); err != nil {
		return nil, err
	}
	return &dto.LeadSourceResponse{ID: ls.ID, Name: ls.Name}, nil
}

// DeleteLeadSource elimina un origen sin clientes; si está en uso avisa al actor y devuelve ErrInUse.
func (uc *SettingsUseCase) DeleteLeadSource(ctx context.Context, actor *string, id string) error {
	ls, err := uc.leadSources.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ls == nil {
		return domain.ErrNotFound
	}
	n, err := uc.customers.CountByLeadSource(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		uc.notifier.Notify(ctx, ports.Notification{
			UserID: actor, Level: ports.NotificationWarning,
			Title: "Origen en uso", Body: fmt.Sprintf("El origen %q tiene %d clientes.", ls.Name, n),
		})
		return domain.ErrInUse
	}
	return uc.leadSources.Delete(ctx, id)
}

// ── Tags ──

func (uc *SettingsUseCase) ListTags(ctx context.Context) ([]*dto.TagResponse, error) {
	list, err := uc.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTagResponse(t))
	}
	return out, nil
}

func (uc *SettingsUseCase) CreateTag(ctx context.Context, in dto.TagRequest) (*dto.TagResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	tag := &entity.Tag{ID: uuid.New().String(), Name: name, Color: in.Color, CreatedAt: now, UpdatedAt: now}
	if err := uc.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

func (uc *SettingsUseCase) UpdateTag(ctx context.Context, id string, in dto.TagRequest) (*dto.TagResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	tag, err := uc.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	tag.Name, tag.Color, tag.UpdatedAt = name, in.Color, time.Now().UTC()
	if err := uc.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

// DeleteTag elimina la etiqueta y la quita de los clientes que la tenían.
func (uc *SettingsUseCase) DeleteTag(ctx context.Context, id string) error {
	return uc.tags.Delete(ctx, id)
}

func toTagResponse(t *entity.Tag) *dto.TagResponse {
	return &dto.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
}

// ── Custom fields ──

func (uc *SettingsUseCase) ListCustomFields(ctx context.Context) ([]*dto.CustomFieldResponse, error) {
	list, err := uc.customFields.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomFieldResponse, 0, len(list))
	for _, cf := range list {
		out = append(out, &dto.CustomFieldResponse{ID: cf.ID, Name: cf.Name})
	}
	return out, nil
}

func (uc *SettingsUseCase) CreateCustomField(ctx context.Context, in dto.NameRequest) (*dto.CustomFieldResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	cf := &entity.CustomField{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.customFields.Create(ctx, cf); err != nil {
		return nil, err
	}
	return &dto.CustomFieldResponse{ID: cf.ID, Name: cf.Name}, nil
}

func (uc *SettingsUseCase) UpdateCustomField(ctx context.Context, id string, in dto.NameRequest) (*dto.CustomFieldResponse, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	cf, err := uc.customFields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cf == nil {
		return nil, domain.ErrNotFound
	}
	cf.Name, cf.UpdatedAt = name, time.Now().UTC()
	if err := uc.customFields.Update(ctx, cf); err != nil {
		return nil, err
	}
	return &dto.CustomFieldResponse{ID: cf.ID, Name: cf.Name}, nil
}

// DeleteCustomField elimina el campo junto con sus valores.
func (uc *SettingsUseCase) DeleteCustomField(ctx context.Context, id string) error {
	return uc.customFields.Delete(ctx, id)
}
