package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var returnsColumns = []string{
	"Day",
	"Refunds",
	"Orders_refunded",
	"Returned_amount",
	"Return_rate",
}

type returnsAccumulator struct {
	refunds        int
	ordersRefunded map[string]bool
	amount         decimal.Decimal
}

// returnsReport buckets refunds by the day they were issued and
// relates them to the orders placed that day.
type returnsReport struct {
	skipCounter
	buckets     map[string]*returnsAccumulator
	ordersByDay map[string]int
}

func newReturnsReport() *returnsReport {
	return &returnsReport{
		buckets:     make(map[string]*returnsAccumulator),
		ordersByDay: make(map[string]int),
	}
}

func (b *returnsReport) Name() string { return Returns }

func (b *returnsReport) Columns() []string { return returnsColumns }

func (b *returnsReport) Fold(root *export.Record) {
	if root.Kind != export.KindOrder {
		log.Warningf("returns report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	o := root.Order

	if o.CreatedAt.IsZero() {
		b.skipped++
	} else {
		b.ordersByDay[dayKey(o.CreatedAt)]++
	}

	for _, r := range o.Refunds {
		if r.CreatedAt.IsZero() {
			b.skipped++
			continue
		}
		acc, ok := b.buckets[dayKey(r.CreatedAt)]
		if !ok {
			acc = &returnsAccumulator{ordersRefunded: make(map[string]bool)}
			b.buckets[dayKey(r.CreatedAt)] = acc
		}
		acc.refunds++
		acc.ordersRefunded[o.ID] = true
		acc.amount = acc.amount.Add(r.Amount.Abs())
	}
}

func (b *returnsReport) Table() *Table {
	days := make([]string, 0, len(b.buckets))
	for day := range b.buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	rows := make([][]string, 0, len(days))
	for _, day := range days {
		acc := b.buckets[day]
		returnRate := safeDiv(fromInt(len(acc.ordersRefunded)), fromInt(b.ordersByDay[day]))
		rows = append(rows, []string{
			day,
			count(acc.refunds),
			count(len(acc.ordersRefunded)),
			money(acc.amount),
			rate(returnRate),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
