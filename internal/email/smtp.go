package email

import (
	"context"

	gomail "gopkg.in/gomail.v2"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/config"
)

// SMTPProvider delivers mail over plain SMTP. Used when no Brevo API key is
// configured, e.g. against a local mailcatcher in development.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "smtp delivery failed", 502)
	}
	return nil
}
