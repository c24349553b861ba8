package delivery

import (
	"context"
	"fmt"
	"path"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/metrics"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/services/report"
	"github.com/rs/zerolog"
)

// attachmentFormats are rendered and attached to every report e-mail.
var attachmentFormats = []string{"csv", "pdf"}

// ReportSender e-mails an analysis with its rendered artefacts attached.
type ReportSender interface {
	Send(ctx context.Context, a *domain.Analysis, recipient Recipient) error
}

type Recipient struct {
	Name    string
	Address string
}

type reportSender struct {
	mailer    Mailer
	renderers report.Registry
	archiver  Archiver
	metrics   *metrics.Metrics
}

// NewReportSender wires a sender. archiver may be nil to skip archiving.
func NewReportSender(mailer Mailer, renderers report.Registry, archiver Archiver, m *metrics.Metrics) ReportSender {
	return &reportSender{mailer: mailer, renderers: renderers, archiver: archiver, metrics: m}
}

func (s *reportSender) Send(ctx context.Context, a *domain.Analysis, to Recipient) error {
	logger := zerolog.Ctx(ctx).With().Str("app_id", a.Ref.ID).Logger()

	if to.Address == "" {
		return &domain.InvalidConfigurationError{Field: "to", Value: "", Reason: "recipient address is required"}
	}

	body, err := report.Email(a, to.Name)
	if err != nil {
		return err
	}

	msg := Message{
		To:      []string{to.Address},
		Subject: body.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	}
	for _, format := range attachmentFormats {
		renderer, err := s.renderers.Get(format)
		if err != nil {
			return err
		}
		data, err := renderer.Render(a)
		if err != nil {
			return fmt.Errorf("failed to render %s attachment: %w", format, err)
		}
		att := Attachment{Name: renderer.FileName(a), ContentType: renderer.ContentType(), Data: data}
		msg.Attachments = append(msg.Attachments, att)
		s.archive(ctx, a, att)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.count("email", "error")
		return err
	}
	s.count("email", "success")
	logger.Info().Int("attachments", len(msg.Attachments)).Msg("report emailed")
	return nil
}

// archive is best effort; a failed upload never blocks the e-mail.
func (s *reportSender) archive(ctx context.Context, a *domain.Analysis, att Attachment) {
	if s.archiver == nil {
		return
	}
	key := path.Join(a.Ref.ID, a.ID, att.Name)
	location, err := s.archiver.Store(ctx, key, att.Data, att.ContentType)
	if err != nil {
		s.count("archive", "error")
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to archive report")
		return
	}
	s.count("archive", "success")
	zerolog.Ctx(ctx).Debug().Str("location", location).Msg("report archived")
}

func (s *reportSender) count(channel, outcome string) {
	if s.metrics != nil {
		s.metrics.Deliveries.WithLabelValues(channel, outcome).Inc()
	}
}
