package report

import (
	"reflect"
	"testing"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

func TestSalesOverTimeNetIdentity(t *testing.T) {
	b := newSalesOverTime()
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/1",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
		Gross:     dec("100.00"),
		Discounts: dec("10.00"),
		Refunded:  dec("-20.00"), // refunds arrive signed either way
		Taxes:     dec("5.00"),
		Shipping:  dec("7.50"),
	}))
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/2",
		CreatedAt: ts(t, "2025-04-29T18:00:00Z"),
		Gross:     dec("50.00"),
	}))

	table := b.Table()
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	row := findRow(t, table, "2025-04-29")

	if got := col(t, table, row, "Orders"); got != "2" {
		t.Errorf("orders = %s", got)
	}
	// net = gross - discounts - abs(returns)
	if got := col(t, table, row, "Net_sales"); got != "120.00" {
		t.Errorf("net sales = %s, want 120.00", got)
	}
	// total = net + taxes + shipping + duties + fees
	if got := col(t, table, row, "Total_sales"); got != "132.50" {
		t.Errorf("total sales = %s, want 132.50", got)
	}
	if got := col(t, table, row, "Average_order_value"); got != "66.25" {
		t.Errorf("aov = %s, want 66.25", got)
	}
}

func TestSalesOverTimeSkipsUndatedOrders(t *testing.T) {
	b := newSalesOverTime()
	b.Fold(orderRoot(&export.Order{ID: "gid://shopify/Order/1"}))
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/2",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
	}))

	table := b.Table()
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if b.Skipped() != 1 {
		t.Errorf("expected 1 skipped order, got %d", b.Skipped())
	}
}

func TestSalesOverTimeRowsSortedByDay(t *testing.T) {
	b := newSalesOverTime()
	for _, day := range []string{"2025-05-02T00:00:00Z", "2025-04-29T00:00:00Z", "2025-05-01T00:00:00Z"} {
		b.Fold(orderRoot(&export.Order{ID: day, CreatedAt: ts(t, day)}))
	}

	table := b.Table()
	want := []string{"2025-04-29", "2025-05-01", "2025-05-02"}
	for i, row := range table.Rows {
		if row[0] != want[i] {
			t.Fatalf("rows not sorted by day: %v", table.Rows)
		}
	}
}

func TestSalesOverTimeTableIsIdempotent(t *testing.T) {
	b := newSalesOverTime()
	b.Fold(orderRoot(&export.Order{
		ID:        "gid://shopify/Order/1",
		CreatedAt: ts(t, "2025-04-29T10:00:00Z"),
		Gross:     dec("100.00"),
	}))

	first := b.Table()
	second := b.Table()
	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Fatalf("finalizing twice must yield identical rows:\n%v\n%v", first.Rows, second.Rows)
	}
}

func TestSalesOverTimeZeroDenominator(t *testing.T) {
	// A day bucket cannot exist without an order, so force the rule
	// through the shared division helper instead.
	if got := safeDiv(dec("10.00"), dec("0")); !got.IsZero() {
		t.Fatalf("zero denominator must yield zero, got %s", got)
	}
}
