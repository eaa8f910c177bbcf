package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	xlog "github.com/Zachkp/devfolio/internal/log"
	"github.com/Zachkp/devfolio/internal/mail"
	"github.com/Zachkp/devfolio/internal/metrics"
)

// Store persists submissions. It is optional; a nil Store skips saving.
type Store interface {
	SaveMessage(ctx context.Context, name, email, body, ip string) (string, error)
	MarkDelivered(ctx context.Context, id string) error
}

// Meta describes where a submission came from.
type Meta struct {
	ClientIP string
}

// Service validates, records and mails contact submissions. Nothing is
// retried.
type Service struct {
	mailer mail.Mailer
	store  Store
	to     string
	from   string
	logger zerolog.Logger
}

// NewService wires a contact service. to and from may be empty, in which
// case the mailer's configured defaults apply.
func NewService(mailer mail.Mailer, store Store, to, from string) *Service {
	return &Service{
		mailer: mailer,
		store:  store,
		to:     to,
		from:   from,
		logger: xlog.WithComponent("contact"),
	}
}

// Submit handles one submission. Validation problems are returned as
// ValidationErrors; mail failures are wrapped and should be reported to the
// client as a generic error.
func (s *Service) Submit(ctx context.Context, req Request, meta Meta) error {
	req = req.Normalize()
	if err := Validate(req); err != nil {
		metrics.RecordContact("invalid")
		return err
	}

	var id string
	if s.store != nil {
		var err error
		id, err = s.store.SaveMessage(ctx, req.Name, req.Email, req.Message, meta.ClientIP)
		if err != nil {
			s.logger.Warn().Err(err).Msg("could not store contact message")
		}
	}

	if s.mailer == nil {
		metrics.RecordContact("failed")
		return fmt.Errorf("send contact mail: %w", mail.ErrNotConfigured)
	}
	msg := mail.ComposeContact(mail.ContactFields{Name: req.Name, Email: req.Email, Message: req.Message}, s.to, s.from)
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.RecordContact("failed")
		ev := s.logger.Error()
		if errors.Is(err, mail.ErrNotConfigured) {
			ev = s.logger.Warn()
		}
		ev.Err(err).Str("message_id", id).Msg("contact mail not sent")
		return fmt.Errorf("send contact mail: %w", err)
	}

	if id != "" {
		if err := s.store.MarkDelivered(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("message_id", id).Msg("could not mark message delivered")
		}
	}
	metrics.RecordContact("sent")
	s.logger.Info().Str("message_id", id).Msg("contact mail sent")
	return nil
}
