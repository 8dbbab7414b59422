package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/pulsepoint/pulsepoint-api/internal/config"
	"github.com/pulsepoint/pulsepoint-api/internal/lib/sl"
)

// Transport устанавливает аутентифицированные STARTTLS-сессии
// с почтовым сервером из конфигурации.
type Transport struct {
	cfg config.SMTP
	log *slog.Logger
}

// NewTransport создает транспорт по SMTP-секции конфигурации.
func NewTransport(cfg *config.Config, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg.SMTP, log: log}
}

// Connect открывает соединение, требует STARTTLS и проходит PLAIN-аутентификацию.
// Сервер без поддержки STARTTLS считается ошибкой конфигурации.
func (t *Transport) Connect() (Client, error) {
	const op = "smtp.Transport.Connect"

	addr := net.JoinHostPort(t.cfg.SMTPHost, t.cfg.SMTPPort)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("failed to dial SMTP server", slog.String("addr", addr), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.closeQuietly(conn)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.closeQuietly(client)
		return nil, fmt.Errorf("%s: server does not support STARTTLS", op)
	}
	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.closeQuietly(client)
		return nil, fmt.Errorf("%s: start tls: %w", op, err)
	}

	auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPassword, t.cfg.SMTPHost)
	if err = client.Auth(auth); err != nil {
		t.closeQuietly(client)
		return nil, fmt.Errorf("%s: auth: %w", op, err)
	}

	return &sessionClient{client: client}, nil
}

// GetSMTPUser возвращает адрес отправителя для заголовка From.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}

func (t *Transport) closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		t.log.Error("failed to close SMTP connection", sl.Err(err))
	}
}

// sessionClient адаптирует *smtp.Client к интерфейсу Client.
type sessionClient struct {
	client *smtp.Client
}

func (s *sessionClient) Mail(from string) error { return s.client.Mail(from) }

func (s *sessionClient) Rcpt(to string) error { return s.client.Rcpt(to) }

func (s *sessionClient) Data() (io.WriteCloser, error) { return s.client.Data() }

func (s *sessionClient) Quit() error { return s.client.Quit() }

func (s *sessionClient) Close() error { return s.client.Close() }
