package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/moeenhealth/clinic-api/internal/model"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error {
	subject := "Your session is booked"
	body := fmt.Sprintf(
		"Dear %s,<br><br>Your session on %s at %s has been booked.<br>Reference: %s",
		booking.PatientName, booking.Date, booking.StartTime, booking.ID,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendBookingCancellation(ctx context.Context, to string, booking *model.Booking, reason string) error {
	subject := "Your session was cancelled"
	body := fmt.Sprintf(
		"Dear %s,<br><br>Your session on %s at %s has been cancelled.<br>Reason: %s",
		booking.PatientName, booking.Date, booking.StartTime, reason,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	return s.send(to, subject, content)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
