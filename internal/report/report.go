// Package report turns reconstructed root entities into finalized,
// fixed-column report tables. Each report keeps per-bucket running
// accumulators while folding and computes every derived metric in a
// single pass when the table is built, never incrementally.
package report

import (
	"fmt"
	"time"

	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var log = logging.MustGetLogger("log")

// Report names accepted in configuration.
const (
	SalesOverTime = "sales_over_time"
	MonthlySales  = "monthly_sales"
	Cohort        = "cohort"
	RFM           = "rfm"
	Returns       = "returns"
	Location      = "location"
	Channel       = "channel"
)

// Table is a finalized report: ordered rows over a fixed column set,
// with the run's skip counters attached so data problems travel with
// the result.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
	Stats   export.Stats
}

// Builder accumulates root entities into buckets. Fold never fails;
// entities a report cannot use are counted and skipped. Table closes
// accumulation, computes derived metrics and sorts the rows by the
// report's documented key.
type Builder interface {
	Name() string
	Columns() []string
	Fold(root *export.Record)
	// Skipped counts children or roots excluded during folding
	// (unparseable dates, mostly).
	Skipped() int
	Table() *Table
}

// Options carries the per-run knobs a report may need.
type Options struct {
	// Thresholds configures RFM scoring; nil means DefaultThresholds.
	Thresholds *RFMThresholds
	// ReferenceDate is "now" for recency. Zero means the most recent
	// order date observed in the run.
	ReferenceDate time.Time
}

// NewBuilder returns the builder for a configured report name.
func NewBuilder(name string, opts Options) (Builder, error) {
	switch name {
	case SalesOverTime:
		return newSalesOverTime(), nil
	case MonthlySales:
		return newMonthlySales(), nil
	case Cohort:
		return newCohortReport(), nil
	case RFM:
		t := opts.Thresholds
		if t == nil {
			t = DefaultThresholds()
		}
		return newRFMReport(t, opts.ReferenceDate), nil
	case Returns:
		return newReturnsReport(), nil
	case Location:
		return newLocationReport(), nil
	case Channel:
		return newChannelReport(), nil
	}
	return nil, fmt.Errorf("unknown report %q", name)
}

// RootKinds tells the classifier which entity kinds are roots for a
// given report.
func RootKinds(name string) (export.KindSet, error) {
	switch name {
	case SalesOverTime, MonthlySales, Returns, Channel:
		return export.Roots(export.KindOrder), nil
	case Cohort, RFM, Location:
		return export.Roots(export.KindCustomer), nil
	}
	return nil, fmt.Errorf("unknown report %q", name)
}

type skipCounter struct {
	skipped int
}

func (s *skipCounter) Skipped() int { return s.skipped }
