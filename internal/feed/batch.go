package feed

import (
	"encoding/json"
	"fmt"
)

// LineBatch is the payload the export-acquisition side publishes on
// the feed exchange: a chunk of raw export lines, with a final batch
// flagged as the end signal.
type LineBatch struct {
	EndSignal bool     `json:"end_signal,omitempty"`
	Lines     []string `json:"lines,omitempty"`
}

func NewLineBatch(lines []string) *LineBatch {
	return &LineBatch{Lines: lines}
}

func NewEndSignal() *LineBatch {
	return &LineBatch{EndSignal: true}
}

func (b *LineBatch) IsEndSignal() bool { return b.EndSignal }

func (b *LineBatch) Marshal() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line batch: %w", err)
	}
	return data, nil
}

func LineBatchFromBytes(data []byte) (*LineBatch, error) {
	var b LineBatch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal line batch: %w", err)
	}
	return &b, nil
}

// ReportBatch is a finalized report published back on the feed: the
// full row set plus the run's skip counters, followed by an end
// signal so downstream consumers know the table is complete.
type ReportBatch struct {
	EndSignal bool       `json:"end_signal,omitempty"`
	RunID     string     `json:"run_id,omitempty"`
	Report    string     `json:"report,omitempty"`
	Columns   []string   `json:"columns,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`

	MalformedLines   int `json:"malformed_lines,omitempty"`
	OrphanedChildren int `json:"orphaned_children,omitempty"`
	SkippedChildren  int `json:"skipped_children,omitempty"`
}

func NewReportEndSignal() *ReportBatch {
	return &ReportBatch{EndSignal: true}
}

func (b *ReportBatch) Marshal() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report batch: %w", err)
	}
	return data, nil
}

func ReportBatchFromBytes(data []byte) (*ReportBatch, error) {
	var b ReportBatch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report batch: %w", err)
	}
	return &b, nil
}
