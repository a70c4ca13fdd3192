package feed

import "sync"

// lineConsumer is what QueueSource needs from a Consumer; narrowed so
// tests can stub the broker away.
type lineConsumer interface {
	StartConsuming(OnMessage) *Error
	StopConsuming() *Error
	Close() *Error
}

// QueueSource is a LineSource fed by the export-acquisition side over
// the feed exchange. It buffers line batches until the end-signal
// batch arrives and then hands the lines out in publish order.
type QueueSource struct {
	consumer lineConsumer

	fetchOnce sync.Once
	lines     []string
	pos       int
	err       error
}

func NewQueueSource(consumer lineConsumer) *QueueSource {
	return &QueueSource{consumer: consumer}
}

func (s *QueueSource) fetch() {
	callback := func(msg Message, done chan *Error) {
		defer func() { done <- nil }()

		batch, err := LineBatchFromBytes(msg.Body)
		if err != nil {
			log.Errorf("Failed to unmarshal line batch: %v", err)
			return
		}
		s.lines = append(s.lines, batch.Lines...)
		if batch.IsEndSignal() {
			// Stop from another goroutine: StopConsuming waits for
			// the consume loop this callback runs inside of.
			go s.consumer.StopConsuming()
		}
	}

	if err := s.consumer.StartConsuming(callback); err != nil {
		s.err = err
	}
}

func (s *QueueSource) Next() (string, bool) {
	s.fetchOnce.Do(s.fetch)
	if s.err != nil || s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

func (s *QueueSource) Err() error { return s.err }

func (s *QueueSource) Close() error {
	if err := s.consumer.Close(); err != nil {
		return err
	}
	return nil
}
