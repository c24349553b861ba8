package delivery

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer sends a fully rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// StartTLS requires an upgraded connection before authenticating.
	StartTLS bool
}

type smtpMailer struct {
	settings SMTPSettings
}

func NewSMTPMailer(settings SMTPSettings) Mailer {
	return &smtpMailer{settings: settings}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	mm, err := buildMessage(m.settings.From, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(m.settings.Port)}
	if m.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.settings.Username),
			mail.WithPassword(m.settings.Password),
		)
	}
	if m.settings.StartTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.settings.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from string, msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("email has no recipients")
	}

	mm := mail.NewMsg()
	if err := mm.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := mm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	mm.Subject(msg.Subject)

	switch {
	case msg.HTML != "" && msg.Text != "":
		mm.SetBodyString(mail.TypeTextPlain, msg.Text)
		mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	case msg.HTML != "":
		mm.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	for _, a := range msg.Attachments {
		if err := mm.AttachReader(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(a.ContentType))); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Name, err)
		}
	}
	return mm, nil
}
