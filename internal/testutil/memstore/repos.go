package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// ── Users ──

type userRepo struct{ s *Store }

func userID(id string) func(*entity.User) bool {
	return func(x *entity.User) bool { return x.ID == id }
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	insert(r.s, &r.s.users, u)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return get(r.s, &r.s.users, userID(id)), nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return get(r.s, &r.s.users, func(x *entity.User) bool { return strings.EqualFold(x.Email, email) }), nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	return replace(r.s, &r.s.users, userID(u.ID), u)
}

func (r userRepo) List(_ context.Context, role string) ([]*entity.User, error) {
	return all(r.s, &r.s.users, func(x *entity.User) bool { return role == "" || x.Role == role }), nil
}

// ── Settings ──

type leadSourceRepo struct{ s *Store }

func leadSourceID(id string) func(*entity.LeadSource) bool {
	return func(x *entity.LeadSource) bool { return x.ID == id }
}

func (r leadSourceRepo) Create(_ context.Context, v *entity.LeadSource) error {
	insert(r.s, &r.s.leadSources, v)
	return nil
}
func (r leadSourceRepo) GetByID(_ context.Context, id string) (*entity.LeadSource, error) {
	return get(r.s, &r.s.leadSources, leadSourceID(id)), nil
}
func (r leadSourceRepo) List(_ context.Context) ([]*entity.LeadSource, error) {
	return all(r.s, &r.s.leadSources, nil), nil
}
func (r leadSourceRepo) Update(_ context.Context, v *entity.LeadSource) error {
	return replace(r.s, &r.s.leadSources, leadSourceID(v.ID), v)
}
func (r leadSourceRepo) Delete(_ context.Context, id string) error {
	return remove(r.s, &r.s.leadSources, leadSourceID(id))
}

type tagRepo struct{ s *Store }

func tagID(id string) func(*entity.Tag) bool { return func(x *entity.Tag) bool { return x.ID == id } }

func (r tagRepo) Create(_ context.Context, v *entity.Tag) error {
	insert(r.s, &r.s.tags, v)
	return nil
}
func (r tagRepo) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	return get(r.s, &r.s.tags, tagID(id)), nil
}
func (r tagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	return all(r.s, &r.s.tags, nil), nil
}
func (r tagRepo) Update(_ context.Context, v *entity.Tag) error {
	return replace(r.s, &r.s.tags, tagID(v.ID), v)
}
func (r tagRepo) Delete(_ context.Context, id string) error {
	if err := remove(r.s, &r.s.tags, tagID(id)); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, ids := range r.s.customerTags {
		r.s.customerTags[k] = slices.DeleteFunc(ids, func(x string) bool { return x == id })
	}
	return nil
}

type customFieldRepo struct{ s *Store }

func customFieldID(id string) func(*entity.CustomField) bool {
	return func(x *entity.CustomField) bool { return x.ID == id }
}

func (r customFieldRepo) Create(_ context.Context, v *entity.CustomField) error {
	insert(r.s, &r.s.customFields, v)
	return nil
}
func (r customFieldRepo) GetByID(_ context.Context, id string) (*entity.CustomField, error) {
	return get(r.s, &r.s.customFields, customFieldID(id)), nil
}
func (r customFieldRepo) List(_ context.Context) ([]*entity.CustomField, error) {
	return all(r.s, &r.s.customFields, nil), nil
}
func (r customFieldRepo) Update(_ context.Context, v *entity.CustomField) error {
	return replace(r.s, &r.s.customFields, customFieldID(v.ID), v)
}
func (r customFieldRepo) Delete(_ context.Context, id string) error {
	if err := remove(r.s, &r.s.customFields, customFieldID(id)); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, vals := range r.s.fieldValues {
		r.s.fieldValues[k] = slices.DeleteFunc(vals, func(x *entity.CustomFieldValue) bool { return x.CustomFieldID == id })
	}
	return nil
}

// ── Documents ──

type documentRepo struct{ s *Store }

func documentID(id string) func(*entity.Document) bool {
	return func(x *entity.Document) bool { return x.ID == id }
}

func (r documentRepo) Create(_ context.Context, v *entity.Document) error {
	insert(r.s, &r.s.documents, v)
	return nil
}
func (r documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	return get(r.s, &r.s.documents, documentID(id)), nil
}
func (r documentRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Document, error) {
	return all(r.s, &r.s.documents, func(x *entity.Document) bool { return x.CustomerID == customerID }), nil
}
func (r documentRepo) Delete(_ context.Context, id string) error {
	return remove(r.s, &r.s.documents, documentID(id))
}

// ── Tasks ──

type taskRepo struct{ s *Store }

func taskID(id string) func(*entity.Task) bool {
	return func(x *entity.Task) bool { return x.ID == id }
}

func (r taskRepo) Create(_ context.Context, v *entity.Task) error {
	insert(r.s, &r.s.tasks, v)
	return nil
}
func (r taskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	return get(r.s, &r.s.tasks, taskID(id)), nil
}
func (r taskRepo) Update(_ context.Context, v *entity.Task) error {
	return replace(r.s, &r.s.tasks, taskID(v.ID), v)
}
func (r taskRepo) Delete(_ context.Context, id string) error {
	return remove(r.s, &r.s.tasks, taskID(id))
}
func (r taskRepo) List(_ context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	out := all(r.s, &r.s.tasks, func(t *entity.Task) bool {
		switch {
		case f.CustomerID != nil && t.CustomerID != *f.CustomerID:
			return false
		case f.UserID != nil && !ptrEq(t.UserID, *f.UserID):
			return false
		case f.Completed != nil && t.IsCompleted != *f.Completed:
			return false
		case f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)):
			return false
		case f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)):
			return false
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b *entity.Task) int {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return b.CreatedAt.Compare(a.CreatedAt)
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		}
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// ── Products & quotes ──

type productRepo struct{ s *Store }

func productID(id string) func(*entity.Product) bool {
	return func(x *entity.Product) bool { return x.ID == id }
}

func (r productRepo) Create(_ context.Context, v *entity.Product) error {
	insert(r.s, &r.s.products, v)
	return nil
}
func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return get(r.s, &r.s.products, productID(id)), nil
}
func (r productRepo) List(_ context.Context) ([]*entity.Product, error) {
	return all(r.s, &r.s.products, nil), nil
}
func (r productRepo) Update(_ context.Context, v *entity.Product) error {
	return replace(r.s, &r.s.products, productID(v.ID), v)
}

type quoteRepo struct{ s *Store }

func (r quoteRepo) Create(_ context.Context, q *entity.Quote) error {
	c := cloneOne(q)
	c.Items = slices.Clone(q.Items)
	insert(r.s, &r.s.quotes, c)
	return nil
}

func (r quoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	q := get(r.s, &r.s.quotes, func(x *entity.Quote) bool { return x.ID == id })
	if q != nil {
		r.resolve(q)
	}
	return q, nil
}

func (r quoteRepo) List(_ context.Context, customerID string) ([]*entity.Quote, error) {
	out := all(r.s, &r.s.quotes, func(x *entity.Quote) bool { return customerID == "" || x.CustomerID == customerID })
	for _, q := range out {
		r.resolve(q)
	}
	return out, nil
}

func (r quoteRepo) resolve(q *entity.Quote) {
	items := slices.Clone(q.Items)
	for i := range items {
		if p := get(r.s, &r.s.products, productID(items[i].ProductID)); p != nil {
			items[i].ProductName = p.Name
		}
	}
	q.Items = items
}

// ── Invitations ──

type invitationRepo struct{ s *Store }

func (r invitationRepo) Create(_ context.Context, v *entity.Invitation) error {
	insert(r.s, &r.s.invitations, v)
	return nil
}
func (r invitationRepo) GetByID(_ context.Context, id string) (*entity.Invitation, error) {
	return get(r.s, &r.s.invitations, func(x *entity.Invitation) bool { return x.ID == id }), nil
}
func (r invitationRepo) GetByEmail(_ context.Context, email string) (*entity.Invitation, error) {
	return get(r.s, &r.s.invitations, func(x *entity.Invitation) bool { return strings.EqualFold(x.Email, email) }), nil
}
func (r invitationRepo) Delete(_ context.Context, id string) error {
	return remove(r.s, &r.s.invitations, func(x *entity.Invitation) bool { return x.ID == id })
}
