package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var cohortColumns = []string{
	"Cohort",
	"Periods_since_first_purchase",
	"Total_customers",
	"Total_orders",
	"Total_total_sales",
	"Customer_retention",
}

type cohortKey struct {
	cohort  string
	periods int
}

type cohortAccumulator struct {
	customers map[string]bool
	orders    int
	total     decimal.Decimal
}

// cohortReport groups customers by first-purchase month and buckets
// every one of their orders by how many calendar months elapsed since
// that month.
type cohortReport struct {
	skipCounter
	buckets map[cohortKey]*cohortAccumulator
}

func newCohortReport() *cohortReport {
	return &cohortReport{buckets: make(map[cohortKey]*cohortAccumulator)}
}

func (b *cohortReport) Name() string { return Cohort }

func (b *cohortReport) Columns() []string { return cohortColumns }

func (b *cohortReport) Fold(root *export.Record) {
	if root.Kind != export.KindCustomer {
		log.Warningf("cohort report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	c := root.Customer

	// Earliest order decides the cohort; ties collapse because only
	// the date value matters, never arrival order.
	var first time.Time
	for _, o := range c.Orders {
		if o.CreatedAt.IsZero() {
			b.skipped++
			continue
		}
		if first.IsZero() || o.CreatedAt.Before(first) {
			first = o.CreatedAt
		}
	}
	if first.IsZero() {
		// No dated order, no cohort to belong to.
		return
	}
	cohort := monthKey(first)

	for _, o := range c.Orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		key := cohortKey{cohort: cohort, periods: monthsBetween(cohort, monthKey(o.CreatedAt))}
		acc, ok := b.buckets[key]
		if !ok {
			acc = &cohortAccumulator{customers: make(map[string]bool)}
			b.buckets[key] = acc
		}
		acc.customers[c.ID] = true
		acc.orders++
		acc.total = acc.total.Add(o.Total)
	}
}

func (b *cohortReport) Table() *Table {
	keys := make([]cohortKey, 0, len(b.buckets))
	for key := range b.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cohort != keys[j].cohort {
			return keys[i].cohort < keys[j].cohort
		}
		return keys[i].periods < keys[j].periods
	})

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		acc := b.buckets[key]

		// Retention reads 0.0 in the cohort's own first period; later
		// periods compare active customers against the cohort size.
		retention := decimal.Zero
		if key.periods > 0 {
			size := 0
			if base, ok := b.buckets[cohortKey{cohort: key.cohort}]; ok {
				size = len(base.customers)
			}
			retention = safeDiv(fromInt(len(acc.customers)), fromInt(size))
		}

		rows = append(rows, []string{
			key.cohort,
			count(key.periods),
			count(len(acc.customers)),
			count(acc.orders),
			money(acc.total),
			rate(retention),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
