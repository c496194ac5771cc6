package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/Despicable-at/robot-delivery-backend/internal/config"
)

// Mailer delivers the two notification kinds the auth flows produce. Calls
// are awaited: a delivery failure surfaces to the caller before it responds.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
	SendPasswordResetLink(ctx context.Context, toEmail, resetLink string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg *config.SMTPConfig) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Verify your email")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your verification code is: %s", code))
	msg.AddAlternativeString(mail.TypeTextHTML,
		fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (m *SMTPMailer) SendPasswordResetLink(ctx context.Context, toEmail, resetLink string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Password Reset")
	msg.SetBodyString(mail.TypeTextPlain,
		fmt.Sprintf("Click the link to reset your password: %s", resetLink))
	msg.AddAlternativeString(mail.TypeTextHTML,
		fmt.Sprintf("<p>Click <a href=%q>here</a> to reset your password.</p>", resetLink))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
