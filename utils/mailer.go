package utils

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"

	"github.com/blogium/blogium/config"
)

// SendMail sends a plain text email using SMTP settings from config.
func SendMail(to, subject, body string) error {
	cfg := config.Get()
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		return fmt.Errorf("smtp not configured")
	}

	em := email.NewEmail()
	em.From = cfg.SMTPFrom
	em.To = []string{to}
	em.Subject = subject
	em.Text = []byte(body)

	addr := net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort))
	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return em.Send(addr, auth)
}

// NotifyOperator delivers a best-effort notification to the configured
// operator address. Failures are logged and swallowed; a broken mail relay
// must never fail the request that triggered the notification.
func NotifyOperator(subject, body string) {
	cfg := config.Get()
	if err := SendMail(cfg.OperatorEmail, subject, body); err != nil {
		if Sugar != nil {
			Sugar.Warnf("operator notification failed: %v", err)
		}
	}
}
