// Package mail envío de correos de invitación al equipo.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/pipeline-crm/pkg/config"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

const invitationSubject = "Invitación al equipo"

// SMTPMailer envía invitaciones por SMTP con gomail. El envío es síncrono dentro de la petición.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.MailConfig, log *logger.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &SMTPMailer{dialer: d, from: cfg.From, log: log.Component("mail")}
}

// SendInvitation envía el enlace de aceptación a email.
func (m *SMTPMailer) SendInvitation(ctx context.Context, email, acceptURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := NewInvitationMessage(m.from, email, acceptURL)
	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error().Err(err).Str("to", email).Msg("fallo al enviar invitación")
		return fmt.Errorf("smtp: %w", err)
	}
	m.log.Info().Str("to", email).Msg("invitación enviada")
	return nil
}

// NewInvitationMessage arma el correo en texto plano con alternativa HTML.
func NewInvitationMessage(from, to, acceptURL string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", invitationSubject)
	msg.SetBody("text/plain", "Te invitaron a unirte al equipo de ventas.\n\nAcepta la invitación aquí:\n"+acceptURL+"\n")
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p>Te invitaron a unirte al equipo de ventas.</p><p><a href=\"%s\">Aceptar invitación</a></p>",
		html.EscapeString(acceptURL),
	))
	return msg
}

// LogMailer registra la invitación en el log en lugar de enviarla (SMTP sin configurar).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.Component("mail")}
}

func (m *LogMailer) SendInvitation(_ context.Context, email, acceptURL string) error {
	m.log.Warn().Str("to", email).Str("url", acceptURL).Msg("SMTP sin configurar: invitación no enviada")
	return nil
}
