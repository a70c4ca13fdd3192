package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

// CSVSink writes the table to a CSV file, header first. Skip counters
// are logged rather than embedded, so the file stays machine-readable.
type CSVSink struct {
	Path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

func (s *CSVSink) Write(t *report.Table) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("could not create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("could not flush report file: %w", err)
	}

	log.Infof("Wrote %d %s rows to %s (malformed lines: %d, orphaned children: %d, skipped children: %d)",
		len(t.Rows), t.Name, s.Path,
		t.Stats.MalformedLines, t.Stats.OrphanedChildren, t.Stats.SkippedChildren)
	return nil
}
