// Package memstore implementa los repositorios en memoria para pruebas de casos de uso.
// Run toma una instantánea del estado y la restaura si fn devuelve error, igual que un rollback.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	customers    []*entity.Customer // orden de inserción
	customerTags map[string][]string
	fieldValues  map[string][]*entity.CustomFieldValue
	stages       []*entity.PipelineStage
	logs         []*entity.StageLog
	users        []*entity.User
	leadSources  []*entity.LeadSource
	tags         []*entity.Tag
	customFields []*entity.CustomField
	documents    []*entity.Document
	tasks        []*entity.Task
	products     []*entity.Product
	quotes       []*entity.Quote
	invitations  []*entity.Invitation

	// FailAppend, si no es nil, lo devuelve StageLogRepository.Append.
	FailAppend error
	// Transactions cuenta las llamadas a Run.
	Transactions int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		customerTags: map[string][]string{},
		fieldValues:  map[string][]*entity.CustomFieldValue{},
	}
}

// Repos repositorios para pipeline.TxRunner.
func (s *Store) Repos() pipeline.Repos {
	return pipeline.Repos{
		Customers: s.Customers(),
		Stages:    s.Stages(),
		Logs:      s.Logs(),
		Users:     s.Users(),
		Quotes:    s.Quotes(),
	}
}

func (s *Store) Customers() repository.CustomerRepository       { return customerRepo{s} }
func (s *Store) Stages() repository.PipelineStageRepository     { return stageRepo{s} }
func (s *Store) Logs() repository.StageLogRepository            { return logRepo{s} }
func (s *Store) Users() repository.UserRepository               { return userRepo{s} }
func (s *Store) Quotes() repository.QuoteRepository             { return quoteRepo{s} }
func (s *Store) Products() repository.ProductRepository         { return productRepo{s} }
func (s *Store) LeadSources() repository.LeadSourceRepository   { return leadSourceRepo{s} }
func (s *Store) Tags() repository.TagRepository                 { return tagRepo{s} }
func (s *Store) CustomFields() repository.CustomFieldRepository { return customFieldRepo{s} }
func (s *Store) Documents() repository.DocumentRepository       { return documentRepo{s} }
func (s *Store) Tasks() repository.TaskRepository               { return taskRepo{s} }
func (s *Store) Invitations() repository.InvitationRepository   { return invitationRepo{s} }

// Run implementa pipeline.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(r pipeline.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	s.Transactions++
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// StageLogs copia de todas las entradas del historial en orden de inserción.
func (s *Store) StageLogs() []entity.StageLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StageLog, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, *l)
	}
	return out
}

type snapshot struct {
	customers    []*entity.Customer
	customerTags map[string][]string
	fieldValues  map[string][]*entity.CustomFieldValue
	stages       []*entity.PipelineStage
	logs         []*entity.StageLog
	users        []*entity.User
	leadSources  []*entity.LeadSource
	tags         []*entity.Tag
	customFields []*entity.CustomField
	documents    []*entity.Document
	tasks        []*entity.Task
	products     []*entity.Product
	quotes       []*entity.Quote
	invitations  []*entity.Invitation
}

func (s *Store) snapshot() snapshot {
	tags := make(map[string][]string, len(s.customerTags))
	for k, v := range s.customerTags {
		tags[k] = slices.Clone(v)
	}
	values := make(map[string][]*entity.CustomFieldValue, len(s.fieldValues))
	for k, v := range s.fieldValues {
		values[k] = cloneAll(v)
	}
	return snapshot{
		customers:    cloneAll(s.customers),
		customerTags: tags,
		fieldValues:  values,
		stages:       cloneAll(s.stages),
		logs:         cloneAll(s.logs),
		users:        cloneAll(s.users),
		leadSources:  cloneAll(s.leadSources),
		tags:         cloneAll(s.tags),
		customFields: cloneAll(s.customFields),
		documents:    cloneAll(s.documents),
		tasks:        cloneAll(s.tasks),
		products:     cloneAll(s.products),
		quotes:       cloneAll(s.quotes),
		invitations:  cloneAll(s.invitations),
	}
}

func (s *Store) restore(sn snapshot) {
	s.customers = sn.customers
	s.customerTags = sn.customerTags
	s.fieldValues = sn.fieldValues
	s.stages = sn.stages
	s.logs = sn.logs
	s.users = sn.users
	s.leadSources = sn.leadSources
	s.tags = sn.tags
	s.customFields = sn.customFields
	s.documents = sn.documents
	s.tasks = sn.tasks
	s.products = sn.products
	s.quotes = sn.quotes
	s.invitations = sn.invitations
}

func cloneAll[T any](list []*T) []*T {
	out := make([]*T, 0, len(list))
	for _, p := range list {
		v := *p
		out = append(out, &v)
	}
	return out
}

func cloneOne[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func find[T any](list []*T, match func(*T) bool) (int, *T) {
	for i, p := range list {
		if match(p) {
			return i, p
		}
	}
	return -1, nil
}

func ptrEq(p *string, v string) bool {
	return p != nil && *p == v
}
