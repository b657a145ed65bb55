package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/config"
)

// BrevoProvider sends transactional email through the Brevo HTTP API
// (POST /v3/smtp/email with an api-key header).
type BrevoProvider struct {
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewBrevoProvider(cfg config.EmailConfig) *BrevoProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BrevoProvider{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.APIBaseURL,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client:    &http.Client{Timeout: timeout},
	}
}

type brevoParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

func (p *BrevoProvider) Send(ctx context.Context, msg Message) error {
	payload := brevoPayload{
		Sender:      brevoParty{Email: p.fromEmail, Name: p.fromName},
		To:          []brevoParty{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "failed to encode email payload", http.StatusBadGateway)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "failed to build email request", http.StatusBadGateway)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "email provider unreachable", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return apperrors.New(
			apperrors.CodeExternalServiceError,
			"email",
			fmt.Sprintf("email provider returned %d: %s", resp.StatusCode, string(respBody)),
			http.StatusBadGateway,
		)
	}
	return nil
}
