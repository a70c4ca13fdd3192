// Package sink emits finalized report tables. The pipeline's only
// obligation upstream of a sink is a deterministic, fully computed row
// set; a sink never recomputes metrics.
package sink

import (
	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

var log = logging.MustGetLogger("log")

type Sink interface {
	Write(t *report.Table) error
}
