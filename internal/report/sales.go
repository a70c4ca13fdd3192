package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

var salesColumns = []string{
	"Day",
	"Orders",
	"Gross_sales",
	"Discounts",
	"Returns",
	"Net_sales",
	"Taxes",
	"Shipping",
	"Duties",
	"Additional_fees",
	"Total_sales",
	"Average_order_value",
}

type salesAccumulator struct {
	orders    int
	gross     decimal.Decimal
	discounts decimal.Decimal
	returns   decimal.Decimal
	taxes     decimal.Decimal
	shipping  decimal.Decimal
	duties    decimal.Decimal
	fees      decimal.Decimal
}

// salesOverTime buckets orders by the day they were placed.
type salesOverTime struct {
	skipCounter
	buckets map[string]*salesAccumulator
}

func newSalesOverTime() *salesOverTime {
	return &salesOverTime{buckets: make(map[string]*salesAccumulator)}
}

func (b *salesOverTime) Name() string { return SalesOverTime }

func (b *salesOverTime) Columns() []string { return salesColumns }

func (b *salesOverTime) Fold(root *export.Record) {
	if root.Kind != export.KindOrder {
		log.Warningf("sales report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	o := root.Order
	if o.CreatedAt.IsZero() {
		b.skipped++
		return
	}

	acc, ok := b.buckets[dayKey(o.CreatedAt)]
	if !ok {
		acc = &salesAccumulator{}
		b.buckets[dayKey(o.CreatedAt)] = acc
	}
	acc.orders++
	acc.gross = acc.gross.Add(o.Gross)
	acc.discounts = acc.discounts.Add(o.Discounts)
	acc.returns = acc.returns.Add(o.Refunded.Abs())
	acc.taxes = acc.taxes.Add(o.Taxes)
	acc.shipping = acc.shipping.Add(o.Shipping)
	acc.duties = acc.duties.Add(o.Duties)
	acc.fees = acc.fees.Add(o.AdditionalFees)
}

func (b *salesOverTime) Table() *Table {
	days := make([]string, 0, len(b.buckets))
	for day := range b.buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	rows := make([][]string, 0, len(days))
	for _, day := range days {
		acc := b.buckets[day]
		net := acc.gross.Sub(acc.discounts).Sub(acc.returns)
		total := net.Add(acc.taxes).Add(acc.shipping).Add(acc.duties).Add(acc.fees)
		aov := safeDiv(total, fromInt(acc.orders))
		rows = append(rows, []string{
			day,
			count(acc.orders),
			money(acc.gross),
			money(acc.discounts),
			money(acc.returns),
			money(net),
			money(acc.taxes),
			money(acc.shipping),
			money(acc.duties),
			money(acc.fees),
			money(total),
			money(aov),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
