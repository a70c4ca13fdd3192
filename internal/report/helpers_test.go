package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return parsed
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func zeroTime() time.Time { return time.Time{} }

func orderRoot(o *export.Order) *export.Record {
	return &export.Record{Kind: export.KindOrder, ID: o.ID, Order: o}
}

func customerRoot(c *export.Customer) *export.Record {
	return &export.Record{Kind: export.KindCustomer, ID: c.ID, Customer: c}
}

func findRow(t *testing.T, table *Table, key ...string) []string {
	t.Helper()
	for _, row := range table.Rows {
		match := true
		for i, k := range key {
			if row[i] != k {
				match = false
				break
			}
		}
		if match {
			return row
		}
	}
	t.Fatalf("no row with key %v in %v", key, table.Rows)
	return nil
}

func col(t *testing.T, table *Table, row []string, name string) string {
	t.Helper()
	for i, c := range table.Columns {
		if c == name {
			return row[i]
		}
	}
	t.Fatalf("no column %q in %v", name, table.Columns)
	return ""
}
