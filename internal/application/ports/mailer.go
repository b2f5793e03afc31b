package ports

import "context"

// InvitationMailer envía el correo de invitación al equipo con el enlace de aceptación.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, email, acceptURL string) error
}
