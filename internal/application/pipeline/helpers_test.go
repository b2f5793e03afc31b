package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/testutil/memstore"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	store       *memstore.Store
	notifier    *memstore.Notifier
	registry    *pipeline.RegistryUseCase
	transitions *pipeline.TransitionService
	stages      []*entity.PipelineStage
}

// newFixture crea las etapas indicadas (la primera queda por defecto).
func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()
	store := memstore.New()
	notifier := &memstore.Notifier{}
	f := &fixture{
		store:       store,
		notifier:    notifier,
		registry:    pipeline.NewRegistryUseCase(store.Stages(), store, notifier),
		transitions: pipeline.NewTransitionService(store, notifier),
	}
	for _, n := range names {
		st, err := f.registry.Create(context.Background(), n)
		require.NoError(t, err)
		f.stages = append(f.stages, st)
	}
	return f
}

// addCustomer inserta un cliente en la etapa por defecto y escribe su primera entrada.
func (f *fixture) addCustomer(t *testing.T, id, first, last string) *entity.Customer {
	t.Helper()
	ctx := context.Background()
	def, err := f.registry.Default(ctx)
	require.NoError(t, err)
	now := time.Now().UTC()
	c := &entity.Customer{
		ID: id, FirstName: first, LastName: last,
		PipelineStageID: strPtr(def.ID), CreatedAt: now, UpdatedAt: now,
	}
	err = f.store.Run(ctx, func(r pipeline.Repos) error {
		if err := r.Customers.Create(ctx, c); err != nil {
			return err
		}
		_, err := f.transitions.OnCustomerCreated(ctx, r, c, nil)
		return err
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) addUser(t *testing.T, id, name, role string) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{ID: id, Name: name, Email: id + "@crm.test", Role: role, Status: "active"}))
}

func (f *fixture) logsOf(customerID string) []entity.StageLog {
	var out []entity.StageLog
	for _, l := range f.store.StageLogs() {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out
}
