package report

import (
	"testing"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

func TestMonthlySalesGrowth(t *testing.T) {
	b := newMonthlySales()
	b.Fold(orderRoot(&export.Order{ID: "o1", CreatedAt: ts(t, "2025-01-10T00:00:00Z"), Total: dec("60.00")}))
	b.Fold(orderRoot(&export.Order{ID: "o2", CreatedAt: ts(t, "2025-01-20T00:00:00Z"), Total: dec("40.00")}))
	b.Fold(orderRoot(&export.Order{ID: "o3", CreatedAt: ts(t, "2025-02-05T00:00:00Z"), Total: dec("150.00")}))

	table := b.Table()

	feb := findRow(t, table, "2025-02")
	if got := col(t, table, feb, "Previous_orders"); got != "2" {
		t.Errorf("previous orders = %s, want 2", got)
	}
	if got := col(t, table, feb, "Previous_total_sales"); got != "100.00" {
		t.Errorf("previous total = %s, want 100.00", got)
	}
	if got := col(t, table, feb, "Sales_growth"); got != "0.50" {
		t.Errorf("sales growth = %s, want 0.50", got)
	}
	if got := col(t, table, feb, "Orders_growth"); got != "-0.50" {
		t.Errorf("orders growth = %s, want -0.50", got)
	}
}

func TestMonthlySalesMissingPreviousMonthIsZero(t *testing.T) {
	b := newMonthlySales()
	b.Fold(orderRoot(&export.Order{ID: "o1", CreatedAt: ts(t, "2025-01-10T00:00:00Z"), Total: dec("100.00")}))
	b.Fold(orderRoot(&export.Order{ID: "o2", CreatedAt: ts(t, "2025-03-10T00:00:00Z"), Total: dec("200.00")}))

	table := b.Table()

	// March has no February bucket: it compares against all zeros,
	// and growth against a zero base is 0.00, not an error.
	march := findRow(t, table, "2025-03")
	if got := col(t, table, march, "Previous_total_sales"); got != "0.00" {
		t.Errorf("previous total = %s, want 0.00", got)
	}
	if got := col(t, table, march, "Sales_growth"); got != "0.00" {
		t.Errorf("sales growth = %s, want 0.00", got)
	}
}

func TestPeriodMath(t *testing.T) {
	if got := prevMonthKey("2025-01"); got != "2024-12" {
		t.Errorf("prevMonthKey(2025-01) = %s", got)
	}
	if got := prevMonthKey("2025-07"); got != "2025-06" {
		t.Errorf("prevMonthKey(2025-07) = %s", got)
	}
	if got := monthsBetween("2025-04", "2025-04"); got != 0 {
		t.Errorf("monthsBetween same month = %d", got)
	}
	if got := monthsBetween("2025-04", "2025-06"); got != 2 {
		t.Errorf("monthsBetween = %d, want 2", got)
	}
	if got := monthsBetween("2024-11", "2025-02"); got != 3 {
		t.Errorf("monthsBetween across years = %d, want 3", got)
	}
}
