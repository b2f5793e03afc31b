package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/jhoicas/pipeline-crm/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const statusActive = "active"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret               string
	ExpMinutes           int
	InvitationExpMinutes int
	Issuer               string
}

// AuthUseCase casos de uso de autenticación y equipo: registro, login e invitaciones.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	mailer         ports.InvitationMailer
	jwtCfg         JWTConfig
	baseURL        string
}

// NewAuthUseCase construye el caso de uso de auth. baseURL es la URL pública del panel.
func NewAuthUseCase(userRepo repository.UserRepository, invitationRepo repository.InvitationRepository, mailer ports.InvitationMailer, jwtCfg JWTConfig, baseURL string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		mailer:         mailer,
		jwtCfg:         jwtCfg,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if role != entity.RoleAdmin && role != entity.RoleEmployee {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	user, err := uc.newUser(email, in.Name, in.Password, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) newUser(email, name, password, role string) (*entity.User, error) {
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if strings.TrimSpace(name) == "" {
		name = email
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         role,
		Status:       statusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != statusActive {
		return nil, domain.ErrForbidden
	}
	return uc.loginResponse(user)
}

func (uc *AuthUseCase) loginResponse(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ── Invitaciones ──

// Invite registra la invitación (o reutiliza la pendiente) y envía el enlace firmado por correo.
func (uc *AuthUseCase) Invite(ctx context.Context, in dto.InviteUserRequest) (*dto.InvitationResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	inv, err := uc.invitationRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &entity.Invitation{ID: uuid.New().String(), Email: email, CreatedAt: time.Now().UTC()}
		if err := uc.invitationRepo.Create(ctx, inv); err != nil {
			return nil, err
		}
	}
	token, err := jwt.GenerateInvitation(uc.jwtCfg.Secret, inv.ID, inv.Email, uc.jwtCfg.Issuer, uc.jwtCfg.InvitationExpMinutes)
	if err != nil {
		return nil, err
	}
	link := uc.baseURL + "/invitations/accept?token=" + url.QueryEscape(token)
	if err := uc.mailer.SendInvitation(ctx, inv.Email, link); err != nil {
		return nil, fmt.Errorf("enviar invitación: %w", err)
	}
	return &dto.InvitationResponse{ID: inv.ID, Email: inv.Email, CreatedAt: inv.CreatedAt}, nil
}

// AcceptInvitation crea el empleado invitado, elimina la invitación y devuelve un token de acceso.
// Token inválido o expirado = ErrUnauthorized; invitación ya usada = ErrNotFound.
func (uc *AuthUseCase) AcceptInvitation(ctx context.Context, in dto.AcceptInvitationRequest) (*dto.LoginResponse, error) {
	if in.Password != in.PasswordConfirmation {
		return nil, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}
	invID, email, err := jwt.ParseInvitation(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	inv, err := uc.invitationRepo.GetByID(ctx, invID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Email != email {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.userRepo.GetByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user, err := uc.newUser(inv.Email, in.Name, in.Password, entity.RoleEmployee)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.invitationRepo.Delete(ctx, inv.ID); err != nil {
		return nil, err
	}
	return uc.loginResponse(user)
}

// ListUsers lista usuarios; role vacío = todos.
func (uc *AuthUseCase) ListUsers(ctx context.Context, role string) ([]*dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
