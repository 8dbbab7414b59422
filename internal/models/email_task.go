// Package models содержит задания на отправку писем, передаваемые через брокер.
package models

// Типы заданий на отправку писем.
const (
	EmailTaskWelcome   = "welcome"
	EmailTaskMagicLink = "magiclink"
)

// EmailTask описывает задание для сервиса отправки писем.
// Публикуется в RabbitMQ и обрабатывается отдельным процессом.
type EmailTask struct {
	Type      string `json:"type"`                 // welcome или magiclink
	Email     string `json:"email"`                // Адрес получателя
	FirstName string `json:"first_name,omitempty"` // Имя получателя для приветствия
	MagicLink string `json:"magic_link,omitempty"` // Ссылка для входа, только для magiclink
}
