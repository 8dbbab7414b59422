// Package services содержит публикацию заданий на отправку писем.
// Отправка выполняется отдельным процессом; здесь письмо лишь ставится
// в очередь, поэтому сбой доставки не блокирует вызывающие сценарии.
package services

import (
	"fmt"
	"log/slog"

	"github.com/pulsepoint/pulsepoint-api/internal/lib/rabbitmq"
	"github.com/pulsepoint/pulsepoint-api/internal/models"
)

// Publisher описывает публикацию сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// NotifierService ставит задания на отправку писем в очередь.
type NotifierService struct {
	publisher Publisher
	log       *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(publisher Publisher, log *slog.Logger) *NotifierService {
	return &NotifierService{
		publisher: publisher,
		log:       log,
	}
}

// SendWelcome ставит в очередь приветственное письмо для user.
func (s *NotifierService) SendWelcome(user models.User) error {
	const op = "notifier.SendWelcome"
	task := models.EmailTask{
		Type:      models.EmailTaskWelcome,
		Email:     user.Email,
		FirstName: user.FirstName,
	}
	if err := s.publisher.Publish(rabbitmq.EmailExchange, models.EmailTaskWelcome, task); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("welcome email queued", slog.String("email", user.Email))
	return nil
}

// SendMagicLink ставит в очередь письмо со ссылкой для входа.
func (s *NotifierService) SendMagicLink(user models.User, link string) error {
	const op = "notifier.SendMagicLink"
	task := models.EmailTask{
		Type:      models.EmailTaskMagicLink,
		Email:     user.Email,
		FirstName: user.FirstName,
		MagicLink: link,
	}
	if err := s.publisher.Publish(rabbitmq.EmailExchange, models.EmailTaskMagicLink, task); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("magic link email queued", slog.String("email", user.Email))
	return nil
}
