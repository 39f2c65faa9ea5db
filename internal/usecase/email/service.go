package email

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-summarizer/pkg/mailer"
)

// DefaultSubject is used when the caller leaves the subject blank
const DefaultSubject = "Shared summary"

// Dispatcher delivers a composed message. *mailer.Sender satisfies it.
type Dispatcher interface {
	Send(ctx context.Context, msg mailer.Message) (*mailer.DeliveryInfo, error)
}

// AddressChecker reports whether an address is a deliverable email
type AddressChecker interface {
	IsEmail(s string) bool
}

// Service sends summaries by email
type Service interface {
	Send(ctx context.Context, in SendInput) (*mailer.DeliveryInfo, error)
}

// SendInput carries the recipients, subject and plain-text body
type SendInput struct {
	To      []string
	Subject string
	Body    string
}

type emailService struct {
	dispatcher Dispatcher
	checker    AddressChecker
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewEmailService constructs a new email service
func NewEmailService(dispatcher Dispatcher, checker AddressChecker, m *metrics.Metrics, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &emailService{
		dispatcher: dispatcher,
		checker:    checker,
		metrics:    m,
		logger:     logger,
	}
}

func (s *emailService) Send(ctx context.Context, in SendInput) (*mailer.DeliveryInfo, error) {
	to := NormalizeRecipients(in.To)
	if len(to) == 0 || strings.TrimSpace(in.Body) == "" {
		s.metrics.ObserveEmail(metrics.OutcomeInvalid)
		return nil, errors.ErrMissingEmailFields()
	}
	if s.checker != nil {
		for _, addr := range to {
			if !s.checker.IsEmail(addr) {
				s.metrics.ObserveEmail(metrics.OutcomeInvalid)
				return nil, errors.ErrInvalidRecipient(addr)
			}
		}
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = DefaultSubject
	}

	info, err := s.dispatcher.Send(ctx, mailer.Message{
		To:      to,
		Subject: subject,
		Text:    in.Body,
	})
	if err != nil {
		s.metrics.ObserveEmail(metrics.OutcomeUpstreamError)
		s.logger.Error("email.send.failed",
			zap.Strings("to", to),
			zap.Error(err),
		)
		return nil, errors.ErrEmailDeliveryFailed(err)
	}

	s.metrics.ObserveEmail(metrics.OutcomeSuccess)
	s.logger.Info("email.send.success",
		zap.String("message_id", info.MessageID),
		zap.Int("recipients", len(to)),
	)
	return info, nil
}

// NormalizeRecipients splits comma-separated entries, trims them and drops
// empties and repeats while keeping the first-seen order.
func NormalizeRecipients(raw []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			addr := strings.TrimSpace(part)
			if addr == "" {
				continue
			}
			if _, dup := seen[addr]; dup {
				continue
			}
			seen[addr] = struct{}{}
			out = append(out, addr)
		}
	}
	return out
}
