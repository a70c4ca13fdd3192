package sink

import (
	"fmt"

	"github.com/Sunilyadav03/Shopify-Insights/internal/feed"
	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

// reportProducer is what QueueSink needs from a feed.Producer.
type reportProducer interface {
	Send([]byte) *feed.Error
}

// QueueSink publishes the table as one report batch followed by an
// end signal, mirroring the line-batch protocol on the input side.
type QueueSink struct {
	producer reportProducer
}

func NewQueueSink(producer reportProducer) *QueueSink {
	return &QueueSink{producer: producer}
}

func (s *QueueSink) Write(t *report.Table) error {
	batch := &feed.ReportBatch{
		RunID:            t.Stats.RunID,
		Report:           t.Name,
		Columns:          t.Columns,
		Rows:             t.Rows,
		MalformedLines:   t.Stats.MalformedLines,
		OrphanedChildren: t.Stats.OrphanedChildren,
		SkippedChildren:  t.Stats.SkippedChildren,
	}
	data, err := batch.Marshal()
	if err != nil {
		return err
	}
	if err := s.producer.Send(data); err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}

	end, err := feed.NewReportEndSignal().Marshal()
	if err != nil {
		return err
	}
	if err := s.producer.Send(end); err != nil {
		return fmt.Errorf("failed to publish end signal: %w", err)
	}

	log.Infof("Published %d %s rows (run %s)", len(t.Rows), t.Name, t.Stats.RunID)
	return nil
}
