// Package notify turns an accepted submission into an operator email:
// subject and plain-text/HTML bodies rendered from Liquid templates,
// dispatched through AWS SES with reply-to set to the submitter.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/osteele/liquid"

	"github.com/rishiv/portfolio-api/internal/contact"
)

// Notifier dispatches a notification for one submission.
type Notifier interface {
	Notify(ctx context.Context, sub *contact.Submission) error
}

const subjectTemplate = `New contact form submission: {{ subject }}`

const textTemplate = `Name: {{ full_name }}
Email: {{ email }}
Subject: {{ subject }}

Message:
{{ message }}

--
Received {{ received_at }} from {{ client_ip }}`

const htmlTemplate = `<div style="font-family: sans-serif; max-width: 600px;">
  <h2 style="margin-bottom: 4px;">New contact form submission</h2>
  <table cellpadding="4">
    <tr><td><strong>Name</strong></td><td>{{ full_name | escape }}</td></tr>
    <tr><td><strong>Email</strong></td><td><a href="mailto:{{ email | escape }}">{{ email | escape }}</a></td></tr>
    <tr><td><strong>Subject</strong></td><td>{{ subject | escape }}</td></tr>
  </table>
  <p style="white-space: pre-wrap; border-left: 3px solid #ccc; padding-left: 12px;">{{ message | escape }}</p>
  <p style="color: #888; font-size: 12px;">Received {{ received_at }} from {{ client_ip }}</p>
</div>`

// Email is a composed notification ready for the relay.
type Email struct {
	Subject  string
	TextBody string
	HTMLBody string
	ReplyTo  string
}

// Composer renders submission notifications. Templates are parsed once and
// cached by the engine.
type Composer struct {
	engine *liquid.Engine
}

// NewComposer creates a composer with the standard Liquid filter set.
func NewComposer() *Composer {
	return &Composer{engine: liquid.NewEngine()}
}

// Compose renders the subject and both bodies for a submission. A failure
// rendering the HTML body is not fatal: the text body alone still carries
// the full submission.
func (c *Composer) Compose(sub *contact.Submission) (*Email, error) {
	bindings := liquid.Bindings{
		"full_name":   sub.FullName,
		"email":       sub.Email,
		"subject":     sub.Subject,
		"message":     sub.Message,
		"client_ip":   sub.ClientIP,
		"received_at": sub.CreatedAt.UTC().Format(time.RFC1123),
	}

	subject, err := c.engine.ParseAndRenderString(subjectTemplate, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering subject: %w", err)
	}
	text, err := c.engine.ParseAndRenderString(textTemplate, bindings)
	if err != nil {
		return nil, fmt.Errorf("rendering text body: %w", err)
	}

	email := &Email{
		Subject:  subject,
		TextBody: text,
		ReplyTo:  sub.Email,
	}

	if html, err := c.engine.ParseAndRenderString(htmlTemplate, bindings); err == nil {
		email.HTMLBody = html
	}

	return email, nil
}
