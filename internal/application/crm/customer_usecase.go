// Package crm casos de uso de gestión de clientes y sus recursos asociados
// (configuración, documentos, tareas y cotizaciones).
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/jhoicas/pipeline-crm/pkg/slug"
)

// Pestañas fijas del listado de clientes; el resto son slugs de etapas.
const (
	TabAll      = "all"
	TabMine     = "my"
	TabArchived = "archived"
)

// CustomerDeps dependencias del caso de uso de clientes.
type CustomerDeps struct {
	Customers    repository.CustomerRepository
	Stages       repository.PipelineStageRepository
	LeadSources  repository.LeadSourceRepository
	Tags         repository.TagRepository
	CustomFields repository.CustomFieldRepository
	Users        repository.UserRepository
	Tx           pipeline.TxRunner
	Transitions  *pipeline.TransitionService
}

// CustomerUseCase alta, edición, listado por pestañas y archivado de clientes.
// Los cambios de etapa y de empleado pasan siempre por TransitionService.
type CustomerUseCase struct {
	d CustomerDeps
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(d CustomerDeps) *CustomerUseCase {
	return &CustomerUseCase{d: d}
}

// Create registra un cliente. Sin etapa explícita se usa la etapa por defecto; la inserción
// y la primera entrada del historial comparten transacción.
// Solo un administrador (o el sistema) puede elegir el empleado; si lo crea un empleado queda asignado a él.
func (uc *CustomerUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	employeeID := in.EmployeeID
	if !actor.IsAdmin() && actor.UserID != "" {
		if employeeID != nil && *employeeID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		employeeID = actor.IDPtr()
	}
	if err := uc.checkRefs(ctx, in.LeadSourceID, in.TagIDs, in.CustomFields); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Description:  in.Description,
		LeadSourceID: in.LeadSourceID,
		EmployeeID:   employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.d.Tx.Run(ctx, func(r pipeline.Repos) error {
		stage, err := resolveStage(ctx, r.Stages, in.PipelineStageID)
		if err != nil {
			return err
		}
		customer.PipelineStageID = &stage.ID
		if employeeID != nil {
			emp, err := r.Users.GetByID(ctx, *employeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return fmt.Errorf("%w: empleado", domain.ErrNotFound)
			}
		}
		if err := r.Customers.Create(ctx, customer); err != nil {
			return err
		}
		if err := r.Customers.SetTags(ctx, customer.ID, in.TagIDs); err != nil {
			return err
		}
		if err := r.Customers.SetCustomFields(ctx, customer.ID, toFieldValues(customer.ID, in.CustomFields, now)); err != nil {
			return err
		}
		_, err = uc.d.Transitions.OnCustomerCreated(ctx, r, customer, actor.IDPtr())
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, customer.ID)
}

func resolveStage(ctx context.Context, stages repository.PipelineStageRepository, id *string) (*entity.PipelineStage, error) {
	if id != nil {
		st, err := stages.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, fmt.Errorf("%w: etapa", domain.ErrNotFound)
		}
		return st, nil
	}
	st, err := stages.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: no hay etapa por defecto", domain.ErrNotFound)
	}
	return st, nil
}

// checkRefs valida origen, etiquetas y campos personalizados referenciados.
func (uc *CustomerUseCase) checkRefs(ctx context.Context, leadSourceID *string, tagIDs []string, fields []dto.CustomFieldValueRequest) error {
	if leadSourceID != nil {
		ls, err := uc.d.LeadSources.GetByID(ctx, *leadSourceID)
		if err != nil {
			return err
		}
		if ls == nil {
			return fmt.Errorf("%w: origen %q", domain.ErrNotFound, *leadSourceID)
		}
	}
	for _, id := range tagIDs {
		tag, err := uc.d.Tags.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tag == nil {
			return fmt.Errorf("%w: etiqueta %q", domain.ErrNotFound, id)
		}
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.CustomFieldID] {
			return fmt.Errorf("%w: campo %q repetido", domain.ErrDuplicate, f.CustomFieldID)
		}
		seen[f.CustomFieldID] = true
		cf, err := uc.d.CustomFields.GetByID(ctx, f.CustomFieldID)
		if err != nil {
			return err
		}
		if cf == nil {
			return fmt.Errorf("%w: campo %q", domain.ErrNotFound, f.CustomFieldID)
		}
	}
	return nil
}

func toFieldValues(customerID string, in []dto.CustomFieldValueRequest, now time.Time) []*entity.CustomFieldValue {
	out := make([]*entity.CustomFieldValue, 0, len(in))
	for _, f := range in {
		out = append(out, &entity.CustomFieldValue{
			ID:            uuid.New().String(),
			CustomerID:    customerID,
			CustomFieldID: f.CustomFieldID,
			Value:         f.Value,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return out
}

// Get devuelve el cliente con etiquetas y campos personalizados (incluye archivados).
func (uc *CustomerUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.CustomerResponse, error) {
	c, err := uc.d.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tags, err := uc.d.Customers.ListTags(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := uc.d.Customers.ListCustomFields(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c, actor)
	for _, t := range tags {
		out.Tags = append(out.Tags, *toTagResponse(t))
	}
	for _, f := range fields {
		out.CustomFields = append(out.CustomFields, dto.CustomFieldValueResponse{
			CustomFieldID: f.CustomFieldID, Name: f.FieldName, Value: f.Value,
		})
	}
	return out, nil
}

// Update modifica datos de contacto, origen, etiquetas y campos personalizados.
// Etapa y empleado no se tocan aquí.
func (uc *CustomerUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if err := uc.checkRefs(ctx, in.LeadSourceID, in.TagIDs, in.CustomFields); err != nil {
		return nil, err
	}
	err := uc.d.Tx.Run(ctx, func(r pipeline.Repos) error {
		c, err := r.Customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || c.IsDeleted() {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		c.FirstName = strings.TrimSpace(in.FirstName)
		c.LastName = strings.TrimSpace(in.LastName)
		c.Email = in.Email
		c.PhoneNumber = in.PhoneNumber
		c.Description = in.Description
		c.LeadSourceID = in.LeadSourceID
		c.UpdatedAt = now
		if err := r.Customers.Update(ctx, c); err != nil {
			return err
		}
		if err := r.Customers.SetTags(ctx, id, in.TagIDs); err != nil {
			return err
		}
		return r.Customers.SetCustomFields(ctx, id, toFieldValues(id, in.CustomFields, now))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

// AssignEmployee cambia el empleado asignado (solo administradores).
func (uc *CustomerUseCase) AssignEmployee(ctx context.Context, actor dto.Actor, id string, employeeID *string) (*dto.CustomerResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.d.Transitions.ChangeEmployee(ctx, id, employeeID, actor.IDPtr()); err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

// Delete archiva el cliente (borrado lógico).
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.d.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || c.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.d.Customers.SoftDelete(ctx, id, time.Now().UTC())
}

// Restore devuelve un cliente archivado al listado activo.
func (uc *CustomerUseCase) Restore(ctx context.Context, id string) error {
	c, err := uc.d.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || !c.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.d.Customers.Restore(ctx, id)
}

// ── Listado por pestañas ──

// List lista clientes de la pestaña indicada en orden de alta.
// Pestañas: "all", "my" (asignados al actor), "archived" o el slug de una etapa.
func (uc *CustomerUseCase) List(ctx context.Context, actor dto.Actor, tab, search string, page dto.PageRequest) (*dto.CustomerPage, error) {
	page = page.Normalize()
	f, err := uc.filterFor(ctx, actor, tab)
	if err != nil {
		return nil, err
	}
	f.Search = search
	total, err := uc.d.Customers.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	f.Limit, f.Offset = page.Limit, page.Offset
	list, err := uc.d.Customers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c, actor))
	}
	return dto.NewPage(out, page, total), nil
}

// Tabs devuelve las pestañas disponibles con su contador.
func (uc *CustomerUseCase) Tabs(ctx context.Context, actor dto.Actor) ([]dto.CustomerTabResponse, error) {
	type tab struct{ key, label string }
	tabs := []tab{{TabAll, "All"}}
	if !actor.IsAdmin() {
		tabs = append(tabs, tab{TabMine, "My Customers"})
	}
	stages, err := uc.d.Stages.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range stages {
		tabs = append(tabs, tab{slug.Make(s.Name), s.Name})
	}
	tabs = append(tabs, tab{TabArchived, "Archived"})

	out := make([]dto.CustomerTabResponse, 0, len(tabs))
	for _, t := range tabs {
		f, err := uc.filterFor(ctx, actor, t.key)
		if err != nil {
			return nil, err
		}
		n, err := uc.d.Customers.Count(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.CustomerTabResponse{Key: t.key, Label: t.label, Count: n})
	}
	return out, nil
}

func (uc *CustomerUseCase) filterFor(ctx context.Context, actor dto.Actor, tab string) (repository.CustomerFilter, error) {
	switch tab {
	case "", TabAll:
		return repository.CustomerFilter{}, nil
	case TabMine:
		if actor.UserID == "" {
			return repository.CustomerFilter{}, domain.ErrUnauthorized
		}
		return repository.CustomerFilter{EmployeeID: actor.IDPtr()}, nil
	case TabArchived:
		return repository.CustomerFilter{OnlyDeleted: true}, nil
	}
	stages, err := uc.d.Stages.List(ctx)
	if err != nil {
		return repository.CustomerFilter{}, err
	}
	for _, s := range stages {
		if slug.Make(s.Name) == tab {
			id := s.ID
			return repository.CustomerFilter{StageID: &id}, nil
		}
	}
	return repository.CustomerFilter{}, fmt.Errorf("%w: pestaña %q", domain.ErrInvalidInput, tab)
}

func toCustomerResponse(c *entity.Customer, actor dto.Actor) *dto.CustomerResponse {
	out := &dto.CustomerResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		PhoneNumber:     c.PhoneNumber,
		Description:     c.Description,
		LeadSourceID:    c.LeadSourceID,
		PipelineStageID: c.PipelineStageID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		DeletedAt:       c.DeletedAt,
	}
	if actor.IsAdmin() {
		out.EmployeeID = c.EmployeeID
	}
	return out
}
