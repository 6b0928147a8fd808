package mailer_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/mailer"
)

type captureSender struct {
	sent []*mailer.Email
	err  error
}

func (c *captureSender) Send(_ context.Context, email *mailer.Email) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, email)
	return nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"contact.md": &fstest.MapFile{Data: []byte(`---
subject: "Contact form message"
---
**From:** {{.Name}} ({{.Email}})

{{.Message}}
`)},
		"layout.html": &fstest.MapFile{Data: []byte(`<html><main>{{.Content}}</main></html>`)},
	}
}

func TestSendContact(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	m := mailer.New(sender, mailer.NewRenderer(testFS(), "layout.html"), mailer.Config{
		ContactInbox:    "team@example.com",
		ContactTemplate: "contact.md",
		FallbackSubject: "New contact message",
	})

	err := m.SendContact(context.Background(), mailer.ContactMessage{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "My batch came out empty.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	email := sender.sent[0]
	assert.Equal(t, []string{"team@example.com"}, email.To)
	assert.Equal(t, "Jane <jane@example.com>", email.ReplyTo)
	assert.Equal(t, "Contact form message", email.Subject)
	assert.Contains(t, email.HTML, "<main>")
	assert.Contains(t, email.HTML, "Jane")
	assert.Contains(t, email.HTML, "My batch came out empty.")
	assert.Contains(t, email.Text, "jane@example.com")
}

func TestSendContactNoInbox(t *testing.T) {
	t.Parallel()

	m := mailer.New(&captureSender{}, mailer.NewRenderer(testFS(), ""), mailer.Config{})

	err := m.SendContact(context.Background(), mailer.ContactMessage{Email: "a@b.c"})
	assert.ErrorIs(t, err, mailer.ErrNoRecipient)
}

func TestSendContactMissingTemplate(t *testing.T) {
	t.Parallel()

	m := mailer.New(&captureSender{}, mailer.NewRenderer(fstest.MapFS{}, ""), mailer.Config{
		ContactInbox:    "team@example.com",
		ContactTemplate: "contact.md",
	})

	err := m.SendContact(context.Background(), mailer.ContactMessage{Email: "a@b.c"})
	assert.ErrorIs(t, err, mailer.ErrTemplateNotFound)
}

func TestSendRaw(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	m := mailer.New(sender, mailer.NewRenderer(fstest.MapFS{}, ""), mailer.Config{})

	err := m.SendRaw(context.Background(), &mailer.Email{
		To:      []string{"x@example.com"},
		Subject: "hi",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	err = m.SendRaw(context.Background(), &mailer.Email{})
	assert.ErrorIs(t, err, mailer.ErrNoRecipient)
}
