package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// ErrNotConfigured is returned when no SMTP host was configured
var ErrNotConfigured = errors.New("smtp host not configured")

// Message is a single email to send
type Message struct {
	To      []string
	Subject string
	Text    string
}

// Envelope mirrors the SMTP envelope used for delivery
type Envelope struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

// DeliveryInfo is what the transport reports back after a successful send
type DeliveryInfo struct {
	MessageID string   `json:"messageId"`
	Accepted  []string `json:"accepted"`
	Envelope  Envelope `json:"envelope"`
}

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Sender composes and sends emails through an SMTP relay
type Sender struct {
	transport Transport
	from      string
}

// NewSender builds an SMTP client from config. Port 465 uses implicit TLS,
// any other port upgrades with STARTTLS when the relay offers it.
func NewSender(cfg config.SMTPConfig) (*Sender, error) {
	if cfg.Host == "" {
		return &Sender{from: cfg.FromAddress()}, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.ImplicitTLS() {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &Sender{transport: client, from: cfg.FromAddress()}, nil
}

// NewSenderWithTransport wires a custom transport, mostly for tests
func NewSenderWithTransport(transport Transport, from string) *Sender {
	return &Sender{transport: transport, from: from}
}

// From returns the configured sender address
func (s *Sender) From() string {
	return s.from
}

// Compose builds the MIME message: the text as plain body plus an HTML
// alternative rendered from it.
func (s *Sender) Compose(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", s.from, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if html, err := RenderHTML(msg.Text); err == nil {
		m.AddAlternativeString(mail.TypeTextHTML, html)
	}
	m.SetMessageID()
	m.SetDate()
	return m, nil
}

// Send composes msg and hands it to the relay in a single attempt
func (s *Sender) Send(ctx context.Context, msg Message) (*DeliveryInfo, error) {
	if s.transport == nil {
		return nil, ErrNotConfigured
	}

	m, err := s.Compose(msg)
	if err != nil {
		return nil, err
	}
	if err := s.transport.DialAndSendWithContext(ctx, m); err != nil {
		return nil, fmt.Errorf("smtp delivery failed: %w", err)
	}

	accepted := make([]string, len(msg.To))
	copy(accepted, msg.To)
	return &DeliveryInfo{
		MessageID: m.GetMessageID(),
		Accepted:  accepted,
		Envelope: Envelope{
			From: s.from,
			To:   accepted,
		},
	}, nil
}
