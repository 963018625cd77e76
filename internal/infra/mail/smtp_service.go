// Package mail implements transactional email delivery over SMTP.
package mail

import (
	"context"

	"credo/config"
	"credo/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

type smtpService struct {
	client  *gomail.Client
	from    string
	product string
}

// NewSMTPService creates a mail service instance backed by an SMTP relay.
func NewSMTPService(cfg *config.Config) (service.MailService, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration is missing")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Mail.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Mail.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Mail.Username),
			gomail.WithPassword(cfg.Mail.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Mail.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	product := cfg.Env.ServiceName
	if product == "" {
		product = "credo"
	}

	return &smtpService{
		client:  client,
		from:    cfg.Mail.From,
		product: product,
	}, nil
}

// SendVerificationEmail delivers the email-verification message.
func (s *smtpService) SendVerificationEmail(ctx context.Context, to, username, verificationURL string) error {
	data := templateData{
		Product:   s.product,
		Username:  username,
		ActionURL: verificationURL,
	}

	text, err := renderText(verificationTextTmpl, data)
	if err != nil {
		return err
	}
	html, err := renderHTML(verificationHTMLTmpl, data)
	if err != nil {
		return err
	}

	return s.send(ctx, to, verificationSubject, text, html)
}

// SendPasswordResetEmail delivers the password-reset message.
func (s *smtpService) SendPasswordResetEmail(ctx context.Context, to, username, resetURL string) error {
	data := templateData{
		Product:   s.product,
		Username:  username,
		ActionURL: resetURL,
	}

	text, err := renderText(passwordResetTextTmpl, data)
	if err != nil {
		return err
	}
	html, err := renderHTML(passwordResetHTMLTmpl, data)
	if err != nil {
		return err
	}

	return s.send(ctx, to, passwordResetSubject, text, html)
}

func (s *smtpService) send(ctx context.Context, to, subject, text, html string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}

	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
