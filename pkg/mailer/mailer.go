// Package mailer mengirim kode konfirmasi lewat SMTP.
// Delivery bersifat best-effort: error dikembalikan ke caller untuk di-log,
// bukan untuk membatalkan signup.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/khmelm/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

// Mailer is the outbound mail collaborator used by the auth flow
type Mailer interface {
	SendConfirmationCode(code, to string) error
}

type SMTPMailer struct {
	config  utils.EmailConfig
	log     *zap.Logger
	enabled bool
}

func New(config utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	enabled := config.Host != "" && config.Port != 0 && config.From != ""
	if !enabled {
		log.Warn("SMTP not configured, confirmation codes will only be logged")
	}

	return &SMTPMailer{
		config:  config,
		log:     log.With(zap.String("component", "mailer")),
		enabled: enabled,
	}
}

func (m *SMTPMailer) SendConfirmationCode(code, to string) error {
	if !m.enabled {
		// Development mode: tampilkan kode di log saja
		m.log.Info("Confirmation code generated",
			zap.String("email", to),
			zap.String("code", code),
		)
		return nil
	}

	subject := "YaMDb confirmation code"
	body := fmt.Sprintf(
		"Hello!\n\nYour YaMDb confirmation code: %s\n\nBest regards,\nThe YaMDb team.",
		code,
	)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s",
		to, m.config.From, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send confirmation code to %s: %w", to, err)
	}

	return nil
}
