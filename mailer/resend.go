// Package mailer sends notification emails through Resend. All sends are
// best-effort: callers treat failures as log-and-continue.
package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/portalempleos/backend/config"
)

// ResendMailer sends transactional email via the Resend API. With no API
// key configured it degrades to a logging no-op, matching local development.
type ResendMailer struct {
	client    *resend.Client
	fromEmail string
}

// NewResendMailer creates a mailer from config
func NewResendMailer(cfg *config.Config) *ResendMailer {
	if cfg.ResendAPIKey == "" {
		log.Println("[Mailer] RESEND_API_KEY not configured, emails will not be sent")
		return &ResendMailer{fromEmail: cfg.FromEmail}
	}

	return &ResendMailer{
		client:    resend.NewClient(cfg.ResendAPIKey),
		fromEmail: cfg.FromEmail,
	}
}

// SendApplicantConfirmation emails the candidate that their application was
// received.
func (m *ResendMailer) SendApplicantConfirmation(ctx context.Context, name, email, offerTitle, company string) error {
	return m.send(ctx, email,
		fmt.Sprintf("Postulación recibida: %s", offerTitle),
		applicantTemplate(name, offerTitle, company))
}

// SendEmployerNotification emails the employer about a new application.
func (m *ResendMailer) SendEmployerNotification(ctx context.Context, applicantName, employerEmail, offerTitle, company, dashboardURL string) error {
	return m.send(ctx, employerEmail,
		fmt.Sprintf("Nueva postulación: %s", offerTitle),
		employerTemplate(applicantName, offerTitle, company, dashboardURL))
}

// SendEmployerWelcome emails a newly registered employer.
func (m *ResendMailer) SendEmployerWelcome(ctx context.Context, name, email, company string) error {
	return m.send(ctx, email,
		"¡Bienvenido a Portal de Empleos Chile!",
		welcomeTemplate(name, company))
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	if m.client == nil {
		log.Printf("[Mailer] skipping email to %s (no API key): %s", to, subject)
		return nil
	}

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("[Mailer] email sent to %s: %s", to, subject)
	return nil
}
