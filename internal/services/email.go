package services

import (
	"fmt"
	"net/smtp"

	"github.com/gracechapel/church-admin-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendRoleChanged notifies an account that a super admin changed its role.
func (s *EmailService) SendRoleChanged(to, newRole string) error {
	subject := "Your dashboard access has changed"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Role Update</h2>
			<p>Hi,</p>
			<p>Your role on the Grace Chapel admin dashboard is now <strong>%s</strong>.</p>
			<p>If you believe this is a mistake, contact a church administrator.</p>
		</body>
		</html>
	`, newRole)

	return s.Send(to, subject, body)
}
