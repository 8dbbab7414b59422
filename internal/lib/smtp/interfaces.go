// Package smtp реализует транспорт отправки писем уведомлений.
package smtp

import "io"

// Client описывает минимальный набор операций SMTP-сессии,
// используемый сервисом отправки писем.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-сессии для отправителя писем.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
