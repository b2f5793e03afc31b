package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/pipeline"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/mail"
	"github.com/jhoicas/pipeline-crm/internal/testutil/memstore"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

func memServices(t *testing.T) *services {
	t.Helper()
	store := memstore.New()
	notifier := &memstore.Notifier{}
	log := logger.New(logger.Config{Output: io.Discard, Level: "error"})
	transitions := pipeline.NewTransitionService(store, notifier)
	return &services{
		registry: pipeline.NewRegistryUseCase(store.Stages(), store, notifier),
		board:    pipeline.NewBoardUseCase(store.Stages(), store.Customers(), transitions),
		history:  pipeline.NewHistoryReader(store.Customers(), store.Logs()),
		settings: crm.NewSettingsUseCase(store.LeadSources(), store.Tags(), store.CustomFields(), store.Customers(), notifier),
		products: crm.NewProductUseCase(store.Products()),
		auth: auth.NewAuthUseCase(store.Users(), store.Invitations(), mail.NewLogMailer(log),
			auth.JWTConfig{Secret: "s", ExpMinutes: 5, InvitationExpMinutes: 5, Issuer: "crmctl"}, "http://localhost"),
	}
}

func TestSeed_EsIdempotente(t *testing.T) {
	svc := memServices(t)
	ctx := context.Background()
	opts := seedOptions{AdminEmail: "admin@admin.com", AdminPassword: "clave-segura", AdminName: "Admin", Catalog: true}

	var out bytes.Buffer
	require.NoError(t, seed(ctx, svc, opts, &out))
	assert.Contains(t, out.String(), "admin admin@admin.com creado")

	stages, err := svc.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, stages, len(defaultStages))
	assert.Equal(t, "Lead", stages[0].Name)
	assert.True(t, stages[0].IsDefault)
	for i, st := range stages {
		assert.Equal(t, i+1, st.Position)
	}

	out.Reset()
	require.NoError(t, seed(ctx, svc, opts, &out))
	assert.Contains(t, out.String(), "ya existe")

	stages, err = svc.registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stages, len(defaultStages), "una segunda ejecución no duplica etapas")
	tags, err := svc.settings.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, len(defaultTags))
	products, err := svc.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(defaultProducts))

	res, err := svc.auth.Login(ctx, dto.LoginRequest{Email: "admin@admin.com", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Role)
}

func TestSeed_SinCatalogo(t *testing.T) {
	svc := memServices(t)
	ctx := context.Background()
	require.NoError(t, seed(ctx, svc, seedOptions{AdminEmail: "a@crm.test", AdminPassword: "clave-segura"}, io.Discard))

	tags, err := svc.settings.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestPrintBoard(t *testing.T) {
	var out bytes.Buffer
	printBoard(&out, []dto.BoardColumnResponse{
		{ID: "s1", Title: "Lead", Records: []dto.BoardCardResponse{{ID: "c1", Title: "Juan Pérez"}, {ID: "c2", Title: "Ana Gómez"}}},
		{ID: "s2", Title: "Customer"},
	})
	s := out.String()
	assert.Contains(t, s, "Lead")
	assert.Contains(t, s, "Juan Pérez")
	assert.Contains(t, s, "Customer")
}

func TestRenderTable_SinColumnas(t *testing.T) {
	assert.Empty(t, renderTable(nil, [][]string{{"x"}}, nil))
}
