package crm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/testutil/memstore"
)

var (
	admin    = dto.Actor{UserID: "admin-1", Role: entity.RoleAdmin}
	employee = dto.Actor{UserID: "emp-1", Role: entity.RoleEmployee}
)

func strPtr(s string) *string { return &s }

type fixture struct {
	store     *memstore.Store
	notifier  *memstore.Notifier
	registry  *pipeline.RegistryUseCase
	customers *crm.CustomerUseCase
	settings  *crm.SettingsUseCase
	stages    []*entity.PipelineStage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	notifier := &memstore.Notifier{}
	transitions := pipeline.NewTransitionService(store, notifier)
	f := &fixture{
		store:    store,
		notifier: notifier,
		registry: pipeline.NewRegistryUseCase(store.Stages(), store, notifier),
		customers: crm.NewCustomerUseCase(crm.CustomerDeps{
			Customers:    store.Customers(),
			Stages:       store.Stages(),
			LeadSources:  store.LeadSources(),
			Tags:         store.Tags(),
			CustomFields: store.CustomFields(),
			Users:        store.Users(),
			Tx:           store,
			Transitions:  transitions,
		}),
		settings: crm.NewSettingsUseCase(store.LeadSources(), store.Tags(), store.CustomFields(), store.Customers(), notifier),
	}
	for _, n := range []string{"Lead", "Contact Made", "Proposal Made"} {
		st, err := f.registry.Create(ctx, n)
		require.NoError(t, err)
		f.stages = append(f.stages, st)
	}
	for _, u := range []*entity.User{
		{ID: admin.UserID, Name: "Admin", Email: "admin@crm.test", Role: entity.RoleAdmin, Status: "active"},
		{ID: employee.UserID, Name: "Eva", Email: "eva@crm.test", Role: entity.RoleEmployee, Status: "active"},
	} {
		require.NoError(t, store.Users().Create(ctx, u))
	}
	return f
}

func (f *fixture) create(t *testing.T, actor dto.Actor, first, last string) *dto.CustomerResponse {
	t.Helper()
	c, err := f.customers.Create(context.Background(), actor, dto.CreateCustomerRequest{FirstName: first, LastName: last})
	require.NoError(t, err)
	return c
}
