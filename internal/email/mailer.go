package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kunalaswar/HireFlow/internal/config"
)

// Mailer renders notification templates and hands them to the configured
// provider. Callers decide whether a delivery failure is fatal: invites
// are email-first, candidate notifications are best-effort.
type Mailer struct {
	provider Provider
	baseURL  string
}

func NewMailer(cfg *config.Config) *Mailer {
	var p Provider
	if cfg.Email.Provider == "smtp" {
		p = NewSMTPProvider(cfg.Email)
	} else {
		p = NewBrevoProvider(cfg.Email)
	}
	return &Mailer{provider: p, baseURL: cfg.Server.BaseURL}
}

// NewMailerWithProvider is used by tests to inject a fake provider.
func NewMailerWithProvider(p Provider, baseURL string) *Mailer {
	return &Mailer{provider: p, baseURL: baseURL}
}

func (m *Mailer) SendInvite(ctx context.Context, toEmail, inviterEmail, token string) error {
	body, err := render("invite", TemplateData{
		Link:         fmt.Sprintf("%s/signup?token=%s", m.baseURL, url.QueryEscape(token)),
		InviterEmail: inviterEmail,
	})
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, Message{
		ToEmail:  toEmail,
		Subject:  "You're invited to join HireFlow",
		HTMLBody: body,
	})
}

func (m *Mailer) SendVerification(ctx context.Context, toEmail, name, token string) error {
	body, err := render("verify", TemplateData{
		Name: name,
		Link: fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, url.QueryEscape(token)),
	})
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, Message{
		ToEmail:  toEmail,
		ToName:   name,
		Subject:  "Verify your HireFlow email",
		HTMLBody: body,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, name, token string) error {
	body, err := render("reset", TemplateData{
		Name: name,
		Link: fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, url.QueryEscape(token)),
	})
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, Message{
		ToEmail:  toEmail,
		ToName:   name,
		Subject:  "Reset your HireFlow password",
		HTMLBody: body,
	})
}

func (m *Mailer) SendApplicationReceived(ctx context.Context, toEmail, name, jobTitle, trackingCode string) error {
	body, err := render("application_received", TemplateData{
		Name:         name,
		JobTitle:     jobTitle,
		TrackingCode: trackingCode,
		Link:         fmt.Sprintf("%s/track/%s", m.baseURL, url.PathEscape(trackingCode)),
	})
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, Message{
		ToEmail:  toEmail,
		ToName:   name,
		Subject:  fmt.Sprintf("Application received: %s", jobTitle),
		HTMLBody: body,
	})
}

func (m *Mailer) SendStatusChanged(ctx context.Context, toEmail, name, jobTitle, trackingCode, status string) error {
	body, err := render("status_changed", TemplateData{
		Name:         name,
		JobTitle:     jobTitle,
		TrackingCode: trackingCode,
		Status:       status,
		Link:         fmt.Sprintf("%s/track/%s", m.baseURL, url.PathEscape(trackingCode)),
	})
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, Message{
		ToEmail:  toEmail,
		ToName:   name,
		Subject:  fmt.Sprintf("Application update: %s", jobTitle),
		HTMLBody: body,
	})
}
