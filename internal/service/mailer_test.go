package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)

	return logs
}

func TestNewMailerModes(t *testing.T) {
	full := MailConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "shop@example.com"}

	assert.False(t, NewMailer(full, true).DevMode())
	assert.True(t, NewMailer(full, false).DevMode())
	assert.True(t, NewMailer(MailConfig{Host: "smtp.example.com"}, true).DevMode())
	assert.True(t, NewMailer(MailConfig{Username: "u"}, true).DevMode())
}

func TestSendDevModeLogs(t *testing.T) {
	logs := observeLogs(t)
	m := NewMailer(MailConfig{}, false)

	ok := m.Send("a@x.com", "Hello", "<p>hi</p>")
	require.True(t, ok)

	entries := logs.FilterMessage("Email not sent (development mode)").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "a@x.com", fields["to"])
	assert.Equal(t, "Hello", fields["subject"])
	assert.Equal(t, "<p>hi</p>", fields["body"])
}

func TestSendDelivers(t *testing.T) {
	fs := &fakeSender{}
	m := &Mailer{from: "shop@example.com", sender: fs}

	require.True(t, m.Send("a@x.com", "Subject", "<b>body</b>"))
	require.Len(t, fs.sent, 1)

	msg := fs.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Subject"}, msg.GetHeader("Subject"))
}

func TestSendFailureNoRetry(t *testing.T) {
	logs := observeLogs(t)
	fs := &fakeSender{err: errors.New("connection refused")}
	m := &Mailer{from: "shop@example.com", sender: fs}

	assert.False(t, m.Send("a@x.com", "Subject", "body"))
	assert.Len(t, fs.sent, 1)
	assert.Equal(t, 1, logs.FilterMessage("Failed to send email").Len())
}
