// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection settings. All fields are optional at
// process start; Send reports a configuration error when they are missing.
type Config struct {
	Host string
	Port int
	From string
}

// Mailer sends plain-text messages through a single SMTP relay.
type Mailer struct {
	cfg  Config
	send func(addr, from string, to []string, msg []byte) error
}

// New constructs a Mailer.
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg: cfg,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

// Send delivers a single message. Recipient and configuration problems
// are reported as errors, never panics.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("mailer: smtp host and from address must be configured")
	}
	if to == "" {
		return fmt.Errorf("mailer: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	if err := m.send(addr, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
