// Package smtp delivers notification messages as plain-text mail.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tailoring/internal/core/domain/model/notification"

	"github.com/wneessen/go-mail"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// SSL selects implicit TLS (smtps). Otherwise STARTTLS is used when offered.
	SSL bool
}

type Mailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

func NewMailer(cfg Config, logger *slog.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []mail.Option{mail.WithTLSPortPolicy(mail.TLSOpportunistic)}
	if cfg.SSL {
		opts = []mail.Option{mail.WithSSLPort(false)}
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{
		client: client,
		from:   cfg.From,
		logger: logger.With("component", "smtp_mailer"),
	}, nil
}

func (m *Mailer) Send(ctx context.Context, msg notification.Message) error {
	email, err := NewMail(m.from, msg)
	if err != nil {
		return err
	}

	if err = m.client.DialAndSendWithContext(ctx, email); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	m.logger.DebugContext(ctx, "mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// NewMail renders msg as a text/plain mail from the given sender.
func NewMail(from string, msg notification.Message) (*mail.Msg, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	email := mail.NewMsg()
	if err := email.From(from); err != nil {
		return nil, fmt.Errorf("set sender %q: %w", from, err)
	}
	if err := email.To(msg.To); err != nil {
		return nil, fmt.Errorf("set recipient %q: %w", msg.To, err)
	}
	email.Subject(msg.Subject)
	email.SetBodyString(mail.TypeTextPlain, msg.MessageBody)

	return email, nil
}
