package feed

import (
	"bufio"
	"fmt"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// LineSource yields the raw lines of one bulk export, start to end.
// A source is consumed exactly once per run; re-running a report means
// building a fresh source.
type LineSource interface {
	// Next returns the next line and true, or "" and false once the
	// source is exhausted or failed.
	Next() (string, bool)
	// Err reports the failure that ended iteration early, if any.
	Err() error
	Close() error
}

// FileSource reads a downloaded JSONL export from disk.
type FileSource struct {
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

// maxLineSize bounds a single export line; order lines with large
// line-item payloads exceed bufio's 64KiB default.
const maxLineSize = 4 * 1024 * 1024

// NewFileSource opens the export file. A file that cannot be opened is
// the run-fatal case: the caller gets the error instead of an empty run.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open export file: %w", err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &FileSource{file: f, scanner: sc}, nil
}

func (s *FileSource) Next() (string, bool) {
	if s.err != nil {
		return "", false
	}
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *FileSource) Err() error { return s.err }

func (s *FileSource) Close() error { return s.file.Close() }
