package accounts

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"time"

	"github.com/nexuscampus/authcore/pkg/email"
)

// Mailer composes and sends the two transactional messages this module
// owns. It receives raw secrets (code, reset token) exactly once, embeds
// them in the outbound mail, and never stores them.
type Mailer struct {
	sender       email.Sender
	resetBaseURL string
}

// NewMailer wraps an email.Sender. resetBaseURL is the frontend page that
// accepts the raw reset token, e.g. https://app.example.com/reset-password.
func NewMailer(sender email.Sender, resetBaseURL string) *Mailer {
	return &Mailer{sender: sender, resetBaseURL: resetBaseURL}
}

// SendVerificationCode emails a one-time code valid for ttl. Failures
// surface as ErrEmailDeliveryFailed so callers can degrade instead of
// rolling back.
func (m *Mailer) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	msg := email.Message{
		To:      to,
		Subject: "Verify your email address",
		BodyHTML: fmt.Sprintf(
			"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %s.</p>",
			html.EscapeString(code), humanDuration(ttl),
		),
		Tag: "email-verification",
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return errors.Join(ErrEmailDeliveryFailed, err)
	}
	return nil
}

// SendPasswordResetLink emails the raw reset token embedded in a link valid
// for ttl.
func (m *Mailer) SendPasswordResetLink(ctx context.Context, to, rawToken string, ttl time.Duration) error {
	link := m.resetBaseURL + "?token=" + url.QueryEscape(rawToken)
	msg := email.Message{
		To:      to,
		Subject: "Reset your password",
		BodyHTML: fmt.Sprintf(
			`<p>Click the link to reset your password: <a href="%s">Reset password</a></p><p>The link expires in %s. If you did not request this, ignore this email.</p>`,
			link, humanDuration(ttl),
		),
		Tag: "password-reset",
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return errors.Join(ErrEmailDeliveryFailed, err)
	}
	return nil
}

// humanDuration renders a TTL the way a recipient reads it: whole hours
// when the duration divides evenly, minutes otherwise.
func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(d.Round(time.Minute) / time.Minute)
	if m <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
