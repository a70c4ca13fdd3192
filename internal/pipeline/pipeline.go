// Package pipeline wires the three stages together: classify every
// export line, reattach children to their roots, fold the roots into
// the configured report and hand the finalized table to the sinks.
package pipeline

import (
	"sort"

	"github.com/google/uuid"
	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
	"github.com/Sunilyadav03/Shopify-Insights/internal/feed"
	"github.com/Sunilyadav03/Shopify-Insights/internal/join"
	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
	"github.com/Sunilyadav03/Shopify-Insights/internal/sink"
)

var log = logging.MustGetLogger("log")

// Pipeline owns the state of exactly one run. Accumulators are built
// fresh per Pipeline; nothing is shared across runs.
type Pipeline struct {
	source  feed.LineSource
	builder report.Builder
	sinks   []sink.Sink
	runID   string
}

func New(source feed.LineSource, builder report.Builder, sinks []sink.Sink) *Pipeline {
	return &Pipeline{
		source:  source,
		builder: builder,
		sinks:   sinks,
		runID:   uuid.NewString(),
	}
}

// Run executes the stages in order and returns the finalized table.
// Per-record problems are counted, never fatal; the returned error is
// reserved for an unreadable source or a failing sink.
func (p *Pipeline) Run() (*report.Table, error) {
	defer p.source.Close()

	kinds, err := report.RootKinds(p.builder.Name())
	if err != nil {
		return nil, err
	}

	classified, err := export.Classify(p.source, kinds)
	if err != nil {
		return nil, err
	}
	log.Debugf("run %s classified %d roots, %d parents with children",
		p.runID, len(classified.RootsByID), len(classified.ChildrenByParent))

	roots, orphans := join.Attach(classified)
	if orphans > 0 {
		log.Warningf("run %s dropped %d orphaned children", p.runID, orphans)
	}

	ids := make([]string, 0, len(roots))
	for id := range roots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p.builder.Fold(roots[id])
	}

	table := p.builder.Table()
	table.Stats = classified.Stats
	table.Stats.SkippedChildren = p.builder.Skipped()
	table.Stats.RunID = p.runID

	for _, s := range p.sinks {
		if err := s.Write(table); err != nil {
			return nil, err
		}
	}
	return table, nil
}
