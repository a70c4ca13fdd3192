package feed

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains one exchange (export lines or finished reports)
// into a callback, one delivery at a time.
type Consumer struct {
	name       string
	sourceName string
	channel    *amqp.Channel
	deliveries <-chan amqp.Delivery

	quit chan struct{}
	done chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewConsumer declares the consumer's queue, the source exchange and
// the binding between them.
func NewConsumer(consumerName, sourceName, connectionAddr string) (*Consumer, error) {
	ch, err := getConnection(connectionAddr).channel()
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(
		consumerName,
		false, // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	err = ch.ExchangeDeclare(
		sourceName,
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

	if err := ch.QueueBind(q.Name, "", sourceName, false, nil); err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Consumer{
		name:       q.Name,
		sourceName: sourceName,
		channel:    ch,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}, nil
}

// StartConsuming blocks, invoking the callback per delivery, until
// StopConsuming is called or the server closes the delivery channel.
func (c *Consumer) StartConsuming(onMessage OnMessage) *Error {
	var startErr error

	c.startOnce.Do(func() {
		deliveries, err := c.channel.Consume(
			c.name, // queue
			"",     // consumer
			false,  // autoAck
			false,  // exclusive
			false,  // noLocal
			false,  // noWait
			nil,    // args
		)
		if err != nil {
			startErr = err
			return
		}
		c.deliveries = deliveries
	})

	if startErr != nil {
		return &Error{Code: MessageError, Msg: "failed consuming: " + startErr.Error()}
	}

	defer close(c.done)
	for {
		select {
		case <-c.quit:
			return nil
		case d, ok := <-c.deliveries:
			if !ok {
				// channel closed by the server
				return nil
			}

			ret := make(chan *Error, 1)
			onMessage(Message{Body: d.Body}, ret)
			if err := <-ret; err != nil {
				_ = d.Nack(false, true) // requeue
			} else {
				_ = d.Ack(false)
			}
		}
	}
}

// StopConsuming signals the consume loop to stop and waits for it to
// drain. Safe to call whether or not consumption ever started.
func (c *Consumer) StopConsuming() *Error {
	c.closeOnce.Do(func() {
		close(c.quit)
		if c.deliveries != nil {
			<-c.done
		}
	})
	return nil
}

func (c *Consumer) Close() *Error {
	c.StopConsuming()
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return &Error{Code: CloseError, Msg: "failed to close channel: " + err.Error()}
		}
	}
	return nil
}
