package email

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/dropDatabas3/signet/internal/observability/logger"
)

// SMTPSender implements Sender over SMTP using go-mail.
type SMTPSender struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// NewSMTPSender builds an SMTPSender with TLS auto-negotiation.
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host:    host,
		Port:    port,
		From:    from,
		User:    user,
		Pass:    pass,
		TLSMode: "auto",
	}
}

// SendOTP sends the passcode as a multipart text+html message.
func (s *SMTPSender) SendOTP(ctx context.Context, to, code string) error {
	log := logger.From(ctx).With(
		logger.Component("email.smtp"),
		logger.String("host", s.Host),
		logger.Int("port", s.Port),
	)

	html, text, err := RenderOTP(code)
	if err != nil {
		return fmt.Errorf("email: render: %w", err)
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your OTP Code")
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify,
	}
	switch s.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.InsecureSkipVerify}
	default:
		// "auto"/"starttls": go-mail negotiates STARTTLS when offered
	}

	if err := d.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return fmt.Errorf("email: smtp send: %w", err)
	}

	log.Info("otp email sent")
	return nil
}
