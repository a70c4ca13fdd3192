package feed

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Producer publishes payloads to a fanout exchange.
type Producer struct {
	name    string
	channel *amqp.Channel
}

func NewProducer(name, connectionAddr string) (*Producer, error) {
	ch, err := getConnection(connectionAddr).channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		name,
		"fanout",
		false, // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Producer{name: name, channel: ch}, nil
}

func (p *Producer) Send(message []byte) *Error {
	err := p.channel.Publish(
		p.name,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		})
	if err != nil {
		return &Error{Code: DisconnectedError, Msg: "failed to send message"}
	}
	return nil
}

func (p *Producer) Close() *Error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return &Error{Code: CloseError, Msg: "failed to close channel: " + err.Error()}
		}
	}
	return nil
}
