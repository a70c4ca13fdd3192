package report

import (
	"testing"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

func TestReturnsBucketedByRefundDay(t *testing.T) {
	b := newReturnsReport()
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/1",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
		Refunds: []*export.Refund{
			{ID: "r1", CreatedAt: ts(t, "2025-05-02T00:00:00Z"), Amount: dec("-15.00")},
			{ID: "r2", CreatedAt: ts(t, "2025-05-02T12:00:00Z"), Amount: dec("5.00")},
		},
	}))
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/2",
		CreatedAt: ts(t, "2025-05-02T09:00:00Z"),
	}))

	table := b.Table()
	row := findRow(t, table, "2025-05-02")

	if got := col(t, table, row, "Refunds"); got != "2" {
		t.Errorf("refunds = %s, want 2", got)
	}
	// Two refunds on the same order dedup to one refunded order.
	if got := col(t, table, row, "Orders_refunded"); got != "1" {
		t.Errorf("orders refunded = %s, want 1", got)
	}
	// Amounts fold as absolute values.
	if got := col(t, table, row, "Returned_amount"); got != "20.00" {
		t.Errorf("returned amount = %s, want 20.00", got)
	}
	// One order placed on 2025-05-02, one refunded order: rate 1.00.
	if got := col(t, table, row, "Return_rate"); got != "1.00" {
		t.Errorf("return rate = %s, want 1.00", got)
	}
}

func TestReturnRateZeroDenominator(t *testing.T) {
	b := newReturnsReport()
	// The refund lands on a day with no orders placed at all.
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/1",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
		Refunds: []*export.Refund{
			{ID: "r1", CreatedAt: ts(t, "2025-05-02T00:00:00Z"), Amount: dec("15.00")},
		},
	}))

	table := b.Table()
	row := findRow(t, table, "2025-05-02")
	if got := col(t, table, row, "Return_rate"); got != "0.00" {
		t.Fatalf("zero-denominator rate must be 0.00, got %s", got)
	}
}

func TestReturnsSkipsUndatedRefunds(t *testing.T) {
	b := newReturnsReport()
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/1",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
		Refunds: []*export.Refund{
			{ID: "r1", Amount: dec("15.00")}, // no date
		},
	}))

	table := b.Table()
	if len(table.Rows) != 0 {
		t.Fatalf("undated refund should contribute nothing, got %v", table.Rows)
	}
	if b.Skipped() != 1 {
		t.Errorf("expected 1 skipped refund, got %d", b.Skipped())
	}
}
