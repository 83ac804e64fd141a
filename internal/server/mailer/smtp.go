package mailer

import (
	"context"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"github.com/lifelike-app/backend/internal/server/config"
)

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// Send builds the message and hands it to the relay. The relay either
// acknowledges or errors; there is no partial-completion state.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := m.host + ":" + strconv.Itoa(m.port)
	auth := smtp.PlainAuth("", m.user, m.password, m.host)

	return e.Send(addr, auth)
}
