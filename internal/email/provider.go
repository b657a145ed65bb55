package email

import "context"

// Message is a fully rendered email ready to hand to a provider.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
}

// Provider delivers a single message. Implementations: Brevo HTTP API and
// plain SMTP via gomail.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}
