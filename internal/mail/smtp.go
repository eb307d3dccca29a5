package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer relays through an SMTP server.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a mailer for host:port with optional credentials.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send dials the server and delivers msg. gomail has no context support; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(buildSMTPMessage(m.from, msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildSMTPMessage(from string, msg Message) *gomail.Message {
	out := gomail.NewMessage()
	out.SetHeader("From", from)
	out.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		out.SetHeader("Reply-To", msg.ReplyTo)
	}
	out.SetHeader("Subject", msg.Subject)
	out.SetBody("text/plain", msg.Body)
	return out
}
