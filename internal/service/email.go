package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"madalto-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	logger.ExternalServiceCall("sendgrid", "Send", "to", toEmail, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil, "status", response.StatusCode)
	return nil
}

func (s *emailService) SendOTP(ctx context.Context, email, code string, expiry time.Duration) error {
	subject := "Your verification code"
	plain := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(expiry.Minutes()))
	html := fmt.Sprintf(`<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes. If you did not request this, ignore this email.</p>`,
		code, int(expiry.Minutes()))
	return s.send(ctx, email, "", subject, plain, html)
}

func (s *emailService) SendStatusNotification(ctx context.Context, email, name, applicationID, statusDescription string, reason *string) error {
	subject := fmt.Sprintf("Application %s is now %s", applicationID, statusDescription)
	plain := fmt.Sprintf("Hello %s,\n\nYour license application %s has moved to %s.", name, applicationID, statusDescription)
	html := fmt.Sprintf(`<p>Hello %s,</p><p>Your license application <strong>%s</strong> has moved to <strong>%s</strong>.</p>`,
		name, applicationID, statusDescription)
	if reason != nil && *reason != "" {
		plain += fmt.Sprintf("\n\nReason: %s", *reason)
		html += fmt.Sprintf(`<p>Reason: %s</p>`, *reason)
	}
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *emailService) SendAppointmentReminder(ctx context.Context, email, name, locationName, date, slot string) error {
	subject := "Appointment reminder"
	plain := fmt.Sprintf("Hello %s,\n\nThis is a reminder of your appointment at %s on %s at %s. Bring a valid ID and your printed application summary.",
		name, locationName, date, slot)
	html := fmt.Sprintf(`<p>Hello %s,</p><p>This is a reminder of your appointment at <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>.</p><p>Bring a valid ID and your printed application summary.</p>`,
		name, locationName, date, slot)
	return s.send(ctx, email, name, subject, plain, html)
}
