package services

import (
	"context"
	"fmt"
	"log/slog"

	"ticketcheckin/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendCheckInConfirmation sends the admission receipt using the "checkin_confirmation" template.
func (s *emailService) SendCheckInConfirmation(ctx context.Context, data *domain.CheckInConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("check-in confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("checkin_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render checkin_confirmation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send check-in confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "check-in confirmation sent", "ticket_id", data.TicketID)
	return nil
}
