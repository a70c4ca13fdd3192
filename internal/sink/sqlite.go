package sink

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

// SQLiteSink stores finalized rows in a local database: one table per
// report name plus a runs table keyed by run id, so repeated runs of
// the same report stay distinguishable.
type SQLiteSink struct {
	Path string
}

func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{Path: path}
}

func (s *SQLiteSink) Write(t *report.Table) error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL", s.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	table := "report_" + sanitizeIdent(t.Name)
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = sanitizeIdent(c)
	}

	if err := s.initSchema(db, table, cols); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, report, malformed_lines, orphaned_children, skipped_children, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Stats.RunID, t.Name,
		t.Stats.MalformedLines, t.Stats.OrphanedChildren, t.Stats.SkippedChildren,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)+1), ", ")
	insert := fmt.Sprintf(
		"INSERT INTO %s (run_id, %s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders,
	)
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, 0, len(row)+1)
		args = append(args, t.Stats.RunID)
		for _, v := range row {
			args = append(args, v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}

	log.Infof("Stored %d %s rows in %s (run %s)", len(t.Rows), t.Name, s.Path, t.Stats.RunID)
	return nil
}

func (s *SQLiteSink) initSchema(db *sql.DB, table string, cols []string) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		report TEXT NOT NULL,
		malformed_lines INTEGER NOT NULL,
		orphaned_children INTEGER NOT NULL,
		skipped_children INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, "run_id TEXT NOT NULL")
	for _, c := range cols {
		defs = append(defs, c+" TEXT")
	}
	_, err = db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", ")))
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", table, err)
	}
	return nil
}

// sanitizeIdent lowercases a column or report name and keeps it to
// [a-z0-9_] so it is always a plain SQL identifier.
func sanitizeIdent(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
