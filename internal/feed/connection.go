package feed

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is one delivery handed to a consumer callback.
type Message struct {
	Body []byte
}

// OnMessage handles one delivery and reports the outcome on done: nil
// acks the message, anything else nacks and requeues it.
type OnMessage func(msg Message, done chan *Error)

// Error is a coded feed failure.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

const (
	MessageError int = iota + 1
	DisconnectedError
	CloseError
	ConsumeOnProducerError
)

type feedConn struct {
	conn *amqp.Connection
}

var (
	instance *feedConn
	once     sync.Once
)

// getConnection dials the broker once per process; every consumer and
// producer channel hangs off the same connection.
func getConnection(url string) *feedConn {
	once.Do(func() {
		c, err := amqp.Dial(url)
		if err != nil {
			log.Fatalf("Failed to connect to the feed broker: %v", err)
		}
		instance = &feedConn{conn: c}
	})
	return instance
}

func (f *feedConn) channel() (*amqp.Channel, error) {
	if f.conn.IsClosed() {
		return nil, &Error{Code: DisconnectedError, Msg: "connection is closed"}
	}
	return f.conn.Channel()
}
