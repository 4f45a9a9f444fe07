// Package mailer sends the password reset mail
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/config"
)

// Mailer delivers account mail
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns a mailer for cfg, or nil when SMTP is not configured
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendPasswordReset mails the raw reset token to the user
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := resetMessage(m.from, to, name, token)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return apperr.Service(err, "failed to send reset mail")
	}
	klog.InfoS("Password reset mail sent", "to", to)
	return nil
}

func resetMessage(from, to, name, token string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYou requested a password reset. Use this token within the next minutes:\n\n%s\n\n"+
			"If you did not request a reset, ignore this message.\n", name, token))
	return msg
}
