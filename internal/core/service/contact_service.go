package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

type contactService struct {
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewContactService returns a ContactService delivering through mailer.
func NewContactService(mailer ports.Mailer, log zerolog.Logger) ports.ContactService {
	return &contactService{mailer: mailer, log: log}
}

// Deliver sends one contact message to the portfolio owner.
func (s *contactService) Deliver(ctx context.Context, msg ports.ContactMessage) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver contact message: %w", err)
	}

	s.log.Info().Str("from", msg.Email).Msg("contact message delivered")
	return nil
}
