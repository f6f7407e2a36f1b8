// Package smtpmail delivers the completion docket email over SMTP.
package smtpmail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/irishmetals/skipdispatch/internal/core"
)

// ErrNotConfigured is returned by NewMailer when host, credentials or the
// office recipient are missing.
var ErrNotConfigured = errors.New("smtp is not configured")

const pdfContentType mail.ContentType = "application/pdf"

type dialSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Config describes the SMTP relay and the office mailbox.
type Config struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	FromName string
	To       string
	Timeout  time.Duration
}

// Mailer implements core.DocketMailer.
type Mailer struct {
	client   dialSender
	from     string
	fromName string
	to       string
}

var _ core.DocketMailer = (*Mailer)(nil)

// NewMailer builds a go-mail client. Secure selects implicit TLS (port 465);
// otherwise STARTTLS is used when the server offers it.
func NewMailer(cfg Config) (*Mailer, error) {
	if strings.TrimSpace(cfg.Host) == "" || cfg.Username == "" || cfg.Password == "" ||
		strings.TrimSpace(cfg.To) == "" {
		return nil, ErrNotConfigured
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return newMailer(client, cfg), nil
}

func newMailer(client dialSender, cfg Config) *Mailer {
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = cfg.Username
	}
	name := strings.TrimSpace(cfg.FromName)
	if name == "" {
		name = "Irish Metals"
	}
	return &Mailer{client: client, from: from, fromName: name, to: strings.TrimSpace(cfg.To)}
}

// SendDocket sends the HTML body with the PDF attached to the office address.
func (m *Mailer) SendDocket(ctx context.Context, email core.DocketEmail) error {
	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send docket email: %w", err)
	}
	return nil
}

func (m *Mailer) buildMessage(email core.DocketEmail) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	if len(email.Attachment) > 0 {
		if err := msg.AttachReader(email.AttachmentName, bytes.NewReader(email.Attachment),
			mail.WithFileContentType(pdfContentType)); err != nil {
			return nil, fmt.Errorf("attach docket: %w", err)
		}
	}
	return msg, nil
}
