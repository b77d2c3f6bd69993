package service

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether there is enough to actually deliver mail
func (c MailConfig) Configured() bool {
	return c.Host != "" && c.Username != ""
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional email. Without a transport (development) it
// only logs the message and pretends it went out
type Mailer struct {
	from   string
	sender sender
}

// NewMailer returns a Mailer delivering through SMTP, or a development
// Mailer if deliver is false or the config is incomplete
func NewMailer(cfg MailConfig, deliver bool) *Mailer {
	m := &Mailer{from: cfg.From}

	if deliver && cfg.Configured() {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return m
}

func (m *Mailer) DevMode() bool {
	return m.sender == nil
}

// Send delivers one message and reports whether it went out. There are no
// retries, failures are logged and reported as false
func (m *Mailer) Send(to, subject, html string) bool {
	if m.DevMode() {
		zap.L().Info("Email not sent (development mode)",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", html),
		)
		return true
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.sender.DialAndSend(msg); err != nil {
		zap.L().Error("Failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}

	return true
}
