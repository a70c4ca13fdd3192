package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var monthlyColumns = []string{
	"Month",
	"Orders",
	"Total_sales",
	"Previous_orders",
	"Previous_total_sales",
	"Orders_growth",
	"Sales_growth",
}

type monthlyAccumulator struct {
	orders int
	total  decimal.Decimal
}

// monthlySales buckets orders by calendar month and compares each
// bucket against the previous month. A month with no previous bucket
// compares against all zeros.
type monthlySales struct {
	skipCounter
	buckets map[string]*monthlyAccumulator
}

func newMonthlySales() *monthlySales {
	return &monthlySales{buckets: make(map[string]*monthlyAccumulator)}
}

func (b *monthlySales) Name() string { return MonthlySales }

func (b *monthlySales) Columns() []string { return monthlyColumns }

func (b *monthlySales) Fold(root *export.Record) {
	if root.Kind != export.KindOrder {
		log.Warningf("monthly sales report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	o := root.Order
	if o.CreatedAt.IsZero() {
		b.skipped++
		return
	}

	acc, ok := b.buckets[monthKey(o.CreatedAt)]
	if !ok {
		acc = &monthlyAccumulator{}
		b.buckets[monthKey(o.CreatedAt)] = acc
	}
	acc.orders++
	acc.total = acc.total.Add(o.Total)
}

func (b *monthlySales) Table() *Table {
	months := make([]string, 0, len(b.buckets))
	for month := range b.buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	var zero monthlyAccumulator
	rows := make([][]string, 0, len(months))
	for _, month := range months {
		acc := b.buckets[month]
		prev, ok := b.buckets[prevMonthKey(month)]
		if !ok {
			prev = &zero
		}
		ordersGrowth := safeDiv(fromInt(acc.orders-prev.orders), fromInt(prev.orders))
		salesGrowth := safeDiv(acc.total.Sub(prev.total), prev.total)
		rows = append(rows, []string{
			month,
			count(acc.orders),
			money(acc.total),
			count(prev.orders),
			money(prev.total),
			rate(ordersGrowth),
			rate(salesGrowth),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
