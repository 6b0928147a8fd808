package mailer

import (
	"context"
	"errors"
)

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// ContactInbox receives relayed contact form messages.
	ContactInbox string `env:"MAILER_CONTACT_INBOX"`

	// ContactTemplate is the markdown template for contact relays.
	ContactTemplate string `env:"MAILER_CONTACT_TEMPLATE" envDefault:"contact.md"`

	// FallbackSubject is used when the template metadata has none.
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"New contact message"`
}

// Mailer sends templated email through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// ContactMessage is one sanitized contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// SendContact relays a contact form submission to the configured inbox,
// with reply-to pointing back at the visitor.
func (m *Mailer) SendContact(ctx context.Context, msg ContactMessage) error {
	if m.config.ContactInbox == "" {
		return ErrNoRecipient
	}

	result, err := m.renderer.Render(m.config.ContactTemplate, msg)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := m.config.FallbackSubject
	if s, ok := result.Metadata["subject"].(string); ok && s != "" {
		subject = s
	}

	email := &Email{
		To:      []string{m.config.ContactInbox},
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		ReplyTo: Recipient(msg.Name, msg.Email),
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// SendRaw delivers a pre-built email without template rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
