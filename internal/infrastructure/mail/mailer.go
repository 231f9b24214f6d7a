// Package mail delivers contact-form messages to the portfolio owner.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

const (
	defaultPort    = 587
	defaultTimeout = 10 * time.Second
)

// SMTPConfig holds the relay settings. From defaults to User. Timeout bounds
// dialing and every SMTP exchange.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

type sendFunc func(ctx context.Context, msg *gomail.Msg) error

// SMTPMailer sends each message as a plain-text mail with Reply-To set to the sender.
type SMTPMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		cfg: cfg,
		send: func(ctx context.Context, msg *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.ContactMessage) error {
	mail, err := m.compose(msg)
	if err != nil {
		return err
	}
	if err := m.send(ctx, mail); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// compose rejects a sender address that does not parse as a single
// address, which also keeps line breaks out of the headers.
func (m *SMTPMailer) compose(msg ports.ContactMessage) (*gomail.Msg, error) {
	mail := gomail.NewMsg()
	if err := mail.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("compose from: %w", err)
	}
	if err := mail.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("compose to: %w", err)
	}
	if err := mail.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("compose reply-to: %w", err)
	}
	mail.Subject("Portfolio contact from " + msg.Name)
	mail.SetDate()
	mail.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\n%s\r\n", msg.Name, msg.Email, msg.Message))
	return mail, nil
}

// LogMailer records messages in the log instead of sending them. It is used
// when no SMTP relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.ContactMessage) error {
	m.log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Int("length", len(msg.Message)).
		Msg("contact message received (smtp not configured)")
	return nil
}
