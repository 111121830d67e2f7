package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// CheckInConfirmationEmailData holds data for the admission confirmation email.
type CheckInConfirmationEmailData struct {
	Email          string
	FullName       string
	EventTitle     string
	TicketTypeName string
	TicketID       string
	CheckInTime    string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendCheckInConfirmation(ctx context.Context, data *CheckInConfirmationEmailData) error
}
