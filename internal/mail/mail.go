package mail

import (
	"context"
	"fmt"

	"github.com/leadersite/internal/config"
	"github.com/leadersite/internal/logger"
)

// Message 纯文本邮件
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers messages. Implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewFromConfig builds the mailer selected by MAIL_PROVIDER.
func NewFromConfig(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From), nil
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From), nil
	case "log", "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// LogMailer 只把邮件写入日志，用于本地开发
type LogMailer struct{}

// Send logs msg.
func (LogMailer) Send(ctx context.Context, msg Message) error {
	logger.For(ctx).WithField("to", msg.To).
		WithField("reply_to", msg.ReplyTo).
		WithField("subject", msg.Subject).
		Info("mail delivery disabled, message logged")
	return nil
}
