package export

import (
	"strings"

	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/feed"
)

var log = logging.MustGetLogger("log")

// Stats counts what the pipeline skipped while still producing a
// report. They are emitted alongside every report so upstream data
// problems stay visible without aborting the analysis.
type Stats struct {
	RunID            string
	MalformedLines   int
	OrphanedChildren int
	SkippedChildren  int
}

// Classified is the output of the classification pass: every valid
// line filed either as a root entity or as a child keyed by its
// parent's id. Child lists keep the order lines arrived in.
type Classified struct {
	RootsByID        map[string]*Record
	ChildrenByParent map[string][]*Record
	Stats            Stats
}

// Classify reads the whole source, decoding each non-blank line and
// filing it by the root-kind set of the active report. A line that
// fails to decode, or that is neither a root kind nor a child of one,
// bumps MalformedLines and is dropped; one bad line never ends a run.
// The returned error is reserved for the source itself failing.
func Classify(src feed.LineSource, roots KindSet) (*Classified, error) {
	c := &Classified{
		RootsByID:        make(map[string]*Record),
		ChildrenByParent: make(map[string][]*Record),
	}

	for line, ok := src.Next(); ok; line, ok = src.Next() {
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := DecodeLine(line)
		if err != nil {
			c.Stats.MalformedLines++
			log.Debugf("skipping malformed line: %v", err)
			continue
		}

		switch {
		case roots[rec.Kind]:
			c.RootsByID[rec.ID] = rec
		case rec.ParentID != "" && roots[KindOf(rec.ParentID)]:
			c.ChildrenByParent[rec.ParentID] = append(c.ChildrenByParent[rec.ParentID], rec)
		default:
			c.Stats.MalformedLines++
			log.Debugf("skipping unrecognized record %s (parent %q)", rec.ID, rec.ParentID)
		}
	}

	if err := src.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
