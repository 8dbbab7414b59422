// Package services: отправка писем из очереди почтовых задач.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
	smtplib "github.com/pulsepoint/pulsepoint-api/internal/lib/smtp"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// SenderService читает почтовые задачи и отправляет письма по SMTP.
type SenderService struct {
	transport smtplib.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtplib.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendWelcomeEmail отправляет приветственное письмо новому пользователю.
func (s *SenderService) SendWelcomeEmail(body []byte) error {
	var task models.EmailTask
	if err := json.Unmarshal(body, &task); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{task.Email}
	subject := "Welcome to PulsePoint"
	bodyText := fmt.Sprintf("Hello, %s!\n\nYour account has been created and enrolled on the Free plan.\n\nThe PulsePoint team.",
		greetingName(task))

	return s.sendEmail(to, subject, bodyText)
}

// SendMagicLinkEmail отправляет одноразовую ссылку входа.
func (s *SenderService) SendMagicLinkEmail(body []byte) error {
	var task models.EmailTask
	if err := json.Unmarshal(body, &task); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{task.Email}
	subject := "Your PulsePoint sign-in link"
	bodyText := fmt.Sprintf("Hello, %s!\n\nUse the link below to sign in to your account:\n%s\n\nThe link works once and expires shortly. If you did not request it, ignore this email.",
		greetingName(task), task.MagicLink)

	return s.sendEmail(to, subject, bodyText)
}

func greetingName(task models.EmailTask) string {
	if task.FirstName != "" {
		return task.FirstName
	}
	return task.Email
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
