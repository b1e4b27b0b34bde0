// Package notify delivers reservation lifecycle events to RabbitMQ.
// Events are first written to the notification_jobs outbox inside the
// same transaction as the state change; the dispatcher drains the
// outbox so a broker outage never loses or blocks a booking.
package notify

import (
	"github.com/rabbitmq/amqp091-go"

	"stayhub/internal/pkg/errs"
)

const exchangeKind = "topic"

type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errs.Wrap(err, "rabbitmq channel")
	}

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, errs.Wrap(err, "rabbitmq exchange declare")
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *Publisher) Publish(topic string, body []byte) error {
	err := p.channel.Publish(
		p.exchange,
		topic,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "rabbitmq publish")
	}
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
