package mailer

import (
	"context"
	"fmt"
)

// Sender is the minimal interface an email provider must implement.
type Sender interface {
	// Send delivers a fully-prepared email. To, Subject and HTML must
	// already be set.
	Send(ctx context.Context, email *Email) error
}

// Email is a prepared message ready for delivery.
type Email struct {
	To      []string // Recipients (at least one required)
	Subject string   // Subject line
	HTML    string   // HTML body
	Text    string   // Plain text alternative
	From    string   // Override the provider's default sender
	ReplyTo string   // Reply-to address
}

// Recipient formats a name and email into RFC 5322 address form:
// "Name <email>", or just the email when no name is given.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
