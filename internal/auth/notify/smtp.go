package notify

import (
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
	Timeout  time.Duration
}

// SMTPSender sends plain text mail through an SMTP relay.
type SMTPSender struct {
	cfg         SMTPConfig
	frontendURL string
}

func NewSMTPSender(cfg SMTPConfig, frontendURL string) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("notify: SMTP host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("notify: SMTP from address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPSender{cfg: cfg, frontendURL: frontendURL}, nil
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	return s.send(ctx, to, SubjectVerification, verificationBody, verificationData{
		Email: to,
		URL:   VerificationURL(s.frontendURL, token),
	})
}

func (s *SMTPSender) SendTwoFactorCode(ctx context.Context, to, code string) error {
	return s.send(ctx, to, SubjectTwoFactor, twoFactorBody, twoFactorData{Email: to, Code: code})
}

func (s *SMTPSender) send(ctx context.Context, to, subject string, body *template.Template, data any) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("notify: from address: %w", err)
		}
	} else if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("notify: from address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("notify: to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	if err := msg.SetBodyTextTemplate(body, data); err != nil {
		return fmt.Errorf("notify: render body: %w", err)
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("notify: mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Port 465 is implicit TLS, everything else upgrades with STARTTLS.
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
