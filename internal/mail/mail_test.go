package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/leadersite/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigSelectsProvider(t *testing.T) {
	m, err := NewFromConfig(config.MailConfig{Provider: "log"})
	require.NoError(t, err)
	assert.IsType(t, LogMailer{}, m)

	m, err = NewFromConfig(config.MailConfig{Provider: "smtp", SMTPHost: "smtp.example.com", SMTPPort: 587})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = NewFromConfig(config.MailConfig{Provider: "sendgrid", SendGridAPIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridMailer{}, m)

	_, err = NewFromConfig(config.MailConfig{Provider: "fax"})
	assert.Error(t, err)
}

func TestBuildSMTPMessageHeaders(t *testing.T) {
	msg := buildSMTPMessage("office@example.com", Message{
		To:      "leader@example.com",
		ReplyTo: "visitor@example.com",
		Subject: "Hello",
		Body:    "Namaste",
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: office@example.com")
	assert.Contains(t, raw, "To: leader@example.com")
	assert.Contains(t, raw, "Reply-To: visitor@example.com")
	assert.Contains(t, raw, "Subject: Hello")
	assert.True(t, strings.Contains(raw, "Namaste"))
}

func TestBuildSendGridMessage(t *testing.T) {
	msg := buildSendGridMessage("office@example.com", Message{
		To:      "leader@example.com",
		ReplyTo: "visitor@example.com",
		Subject: "Hello",
		Body:    "Namaste",
	})

	assert.Equal(t, "office@example.com", msg.From.Address)
	assert.Equal(t, "Hello", msg.Subject)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, "visitor@example.com", msg.ReplyTo.Address)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "leader@example.com", msg.Personalizations[0].To[0].Address)
}

func TestLogMailerNeverFails(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), Message{To: "a@example.com"}))
}
