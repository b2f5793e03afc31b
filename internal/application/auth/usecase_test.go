package auth_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/testutil/memstore"
	"github.com/jhoicas/pipeline-crm/pkg/jwt"
)

type fakeMailer struct {
	to, link string
}

func (m *fakeMailer) SendInvitation(_ context.Context, email, link string) error {
	m.to, m.link = email, link
	return nil
}

var jwtCfg = auth.JWTConfig{Secret: "secret", ExpMinutes: 5, InvitationExpMinutes: 60, Issuer: "pipeline-crm"}

func newAuth(t *testing.T) (*auth.AuthUseCase, *memstore.Store, *fakeMailer) {
	t.Helper()
	store := memstore.New()
	mailer := &fakeMailer{}
	return auth.NewAuthUseCase(store.Users(), store.Invitations(), mailer, jwtCfg, "https://crm.test/"), store, mailer
}

func TestRegisterYLogin(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Admin@CRM.test", Password: "supersecreta", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@crm.test", u.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@crm.test", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@crm.test", Password: "supersecreta"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(jwtCfg.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@crm.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@crm.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@crm.test", Password: "supersecreta", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvitacion_FlujoCompleto(t *testing.T) {
	uc, store, mailer := newAuth(t)
	ctx := context.Background()

	inv, err := uc.Invite(ctx, dto.InviteUserRequest{Email: "eva@crm.test"})
	require.NoError(t, err)
	assert.Equal(t, "eva@crm.test", mailer.to)

	again, err := uc.Invite(ctx, dto.InviteUserRequest{Email: "EVA@crm.test"})
	require.NoError(t, err)
	assert.Equal(t, inv.ID, again.ID)

	link, err := url.Parse(mailer.link)
	require.NoError(t, err)
	assert.Equal(t, "/invitations/accept", link.Path)
	token := link.Query().Get("token")

	res, err := uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{
		Token: token, Name: "Eva", Password: "clave-segura", PasswordConfirmation: "clave-segura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, res.User.Role)
	assert.NotEmpty(t, res.Token)

	pending, err := store.Invitations().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	_, err = uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{
		Token: token, Name: "Eva", Password: "clave-segura", PasswordConfirmation: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	employees, err := uc.ListUsers(ctx, entity.RoleEmployee)
	require.NoError(t, err)
	assert.Len(t, employees, 1)
}

func TestInvitacion_TokenInvalidoOUsuarioExistente(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: "basura", Name: "x", Password: "12345678", PasswordConfirmation: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	access, err := jwt.Generate(jwtCfg.Secret, "u1", entity.RoleAdmin, jwtCfg.Issuer, 5)
	require.NoError(t, err)
	_, err = uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: access, Name: "x", Password: "12345678", PasswordConfirmation: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "eva@crm.test", Password: "supersecreta"})
	require.NoError(t, err)
	_, err = uc.Invite(ctx, dto.InviteUserRequest{Email: "eva@crm.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
