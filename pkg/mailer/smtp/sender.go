// Package smtp implements mailer.Sender over SMTP with STARTTLS and PLAIN auth.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/icsbenin/candidature/pkg/mailer"
)

const defaultTimeout = 30 * time.Second

// Config holds SMTP provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

// dialFunc opens the connection to the relay.
type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Sender implements mailer.Sender by handing a raw MIME message to an SMTP relay.
type Sender struct {
	cfg       Config
	dial      dialFunc
	tlsConfig *tls.Config
	now       func() time.Time
}

// New creates a new SMTP sender. A zero Timeout falls back to 30s.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" || cfg.Port <= 0 {
		return nil, fmt.Errorf("smtp: %w: host and port are required", mailer.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	d := &net.Dialer{Timeout: cfg.Timeout}
	return &Sender{
		cfg:       cfg,
		dial:      d.DialContext,
		tlsConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		now:       time.Now,
	}, nil
}

// Send implements mailer.Sender.
// Every exchange with the relay shares one deadline of cfg.Timeout, or the
// context deadline when that is sooner.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from, err := mail.ParseAddress(email.From)
	if err != nil {
		return fmt.Errorf("smtp: invalid sender %q: %w", email.From, err)
	}

	recipients := make([]string, 0, len(email.To)+len(email.CC)+len(email.BCC))
	for _, r := range email.Recipients() {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return fmt.Errorf("smtp: invalid recipient %q: %w", r, err)
		}
		recipients = append(recipients, addr.Address)
	}

	msg, err := mailer.BuildMessage(email, s.now())
	if err != nil {
		return fmt.Errorf("smtp: build message: %w", err)
	}

	c, err := s.session(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if err := c.Mail(from.Address); err != nil {
		return fmt.Errorf("smtp: sender rejected: %w", err)
	}
	for _, addr := range recipients {
		if err := c.Rcpt(addr); err != nil {
			return fmt.Errorf("smtp: recipient %s rejected: %w", addr, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: open data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp: write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: send failed: %w", err)
	}

	// The relay accepted the message; a failed QUIT changes nothing.
	_ = c.Quit()
	return nil
}

// Healthcheck connects to the relay, negotiates TLS, authenticates and
// quits without sending anything.
func (s *Sender) Healthcheck(ctx context.Context) error {
	c, err := s.session(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp: quit: %w", err)
	}
	return nil
}

// session dials the relay, upgrades to TLS when offered and authenticates
// when credentials are configured.
func (s *Sender) session(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp: dial %s: %w", addr, err)
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp: set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp: greeting: %w", err)
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(s.tlsConfig); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("smtp: starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := c.Auth(auth); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("smtp: auth: %w", err)
		}
	}

	return c, nil
}

// Ensure Sender implements mailer.Sender.
var _ mailer.Sender = (*Sender)(nil)
