package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, _ := find(r.s.customers, func(x *entity.Customer) bool { return x.ID == c.ID }); i >= 0 {
		return domain.ErrDuplicate
	}
	r.s.customers = append(r.s.customers, cloneOne(c))
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, c := find(r.s.customers, func(x *entity.Customer) bool { return x.ID == id })
	return cloneOne(c), nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.mutate(c.ID, func(x *entity.Customer) { *x = *c })
}

func (r customerRepo) UpdateStage(_ context.Context, id, stageID string, at time.Time) error {
	return r.mutate(id, func(x *entity.Customer) {
		x.PipelineStageID = &stageID
		x.UpdatedAt = at
	})
}

func (r customerRepo) UpdateEmployee(_ context.Context, id string, employeeID *string, at time.Time) error {
	return r.mutate(id, func(x *entity.Customer) {
		x.EmployeeID = cloneOne(employeeID)
		x.UpdatedAt = at
	})
}

func (r customerRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	return r.mutate(id, func(x *entity.Customer) { x.DeletedAt = &at })
}

func (r customerRepo) Restore(_ context.Context, id string) error {
	return r.mutate(id, func(x *entity.Customer) { x.DeletedAt = nil })
}

func (r customerRepo) mutate(id string, fn func(*entity.Customer)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, c := find(r.s.customers, func(x *entity.Customer) bool { return x.ID == id })
	if c == nil {
		return domain.ErrNotFound
	}
	fn(c)
	return nil
}

func (r customerRepo) filter(f repository.CustomerFilter) []*entity.Customer {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.IsDeleted() != f.OnlyDeleted {
			continue
		}
		if f.StageID != nil && !c.InStage(*f.StageID) {
			continue
		}
		if f.EmployeeID != nil && !ptrEq(c.EmployeeID, *f.EmployeeID) {
			continue
		}
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{c.FirstName, c.LastName, c.Email, c.PhoneNumber}, " "))
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func (r customerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.filter(f)
	if f.Offset > 0 {
		list = list[min(f.Offset, len(list)):]
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return cloneAll(list), nil
}

func (r customerRepo) Count(_ context.Context, f repository.CustomerFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.filter(f)), nil
}

func (r customerRepo) CountByStage(_ context.Context, stageID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.customers {
		if c.InStage(stageID) {
			n++
		}
	}
	return n, nil
}

func (r customerRepo) CountByLeadSource(_ context.Context, leadSourceID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.customers {
		if ptrEq(c.LeadSourceID, leadSourceID) {
			n++
		}
	}
	return n, nil
}

func (r customerRepo) SetTags(_ context.Context, customerID string, tagIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customerTags[customerID] = slices.Clone(tagIDs)
	return nil
}

func (r customerRepo) ListTags(_ context.Context, customerID string) ([]*entity.Tag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Tag{}
	for _, id := range r.s.customerTags[customerID] {
		if _, t := find(r.s.tags, func(x *entity.Tag) bool { return x.ID == id }); t != nil {
			out = append(out, cloneOne(t))
		}
	}
	return out, nil
}

func (r customerRepo) SetCustomFields(_ context.Context, customerID string, values []*entity.CustomFieldValue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.fieldValues[customerID] = cloneAll(values)
	return nil
}

func (r customerRepo) ListCustomFields(_ context.Context, customerID string) ([]*entity.CustomFieldValue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := cloneAll(r.s.fieldValues[customerID])
	for _, v := range out {
		if _, cf := find(r.s.customFields, func(x *entity.CustomField) bool { return x.ID == v.CustomFieldID }); cf != nil {
			v.FieldName = cf.Name
		}
	}
	return out, nil
}
