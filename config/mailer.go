package config

import (
	"crypto/tls"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

// SMTPConfig carries the settings needed to build a mail dialer.
type SMTPConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "Paper System <no-reply@your.org>"
	SkipTLSVerify bool
}

// LoadSMTPConfig reads SMTP settings from the environment.
func LoadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return SMTPConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          port,
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		From:          os.Getenv("SMTP_FROM"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// IsConfigured reports whether the config is complete enough to send mail.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// NewDialer builds a go-mail dialer with mandatory STARTTLS (port 587 style).
func (c SMTPConfig) NewDialer() *mail.Dialer {
	d := mail.NewDialer(c.Host, c.Port, c.User, c.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         c.Host,
		InsecureSkipVerify: c.SkipTLSVerify, // dev only: set SMTP_SKIP_TLS_VERIFY=1 to skip cert checks
	}
	return d
}
