package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// Client оборачивает канал RabbitMQ для публикации сообщений.
type Client struct {
	Ch *amqp.Channel
}

// NewClient создает нового клиента публикации поверх открытого канала.
func NewClient(ch *amqp.Channel) *Client {
	return &Client{Ch: ch}
}

// Publish сериализует message в JSON и публикует его в exchange
// с ключом маршрутизации routingKey.
func (c *Client) Publish(exchange, routingKey string, message any) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.Ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
