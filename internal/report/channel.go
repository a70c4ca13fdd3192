package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

const unknownChannel = "unknown"

var channelColumns = []string{
	"Channel",
	"Medium",
	"Orders",
	"Customers",
	"Total_sales",
	"Average_order_value",
}

type channelKey struct {
	channel string
	medium  string
}

type channelAccumulator struct {
	orders    int
	customers map[string]bool
	total     decimal.Decimal
}

// channelReport buckets orders by acquisition (channel, medium).
type channelReport struct {
	skipCounter
	buckets map[channelKey]*channelAccumulator
}

func newChannelReport() *channelReport {
	return &channelReport{buckets: make(map[channelKey]*channelAccumulator)}
}

func (b *channelReport) Name() string { return Channel }

func (b *channelReport) Columns() []string { return channelColumns }

func (b *channelReport) Fold(root *export.Record) {
	if root.Kind != export.KindOrder {
		log.Warningf("channel report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	o := root.Order

	key := channelKey{channel: o.Channel, medium: o.Medium}
	if key.channel == "" {
		key.channel = unknownChannel
	}
	if key.medium == "" {
		key.medium = unknownChannel
	}

	acc, ok := b.buckets[key]
	if !ok {
		acc = &channelAccumulator{customers: make(map[string]bool)}
		b.buckets[key] = acc
	}
	acc.orders++
	if o.CustomerID != "" {
		acc.customers[o.CustomerID] = true
	}
	acc.total = acc.total.Add(o.Total)
}

func (b *channelReport) Table() *Table {
	keys := make([]channelKey, 0, len(b.buckets))
	for key := range b.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].channel != keys[j].channel {
			return keys[i].channel < keys[j].channel
		}
		return keys[i].medium < keys[j].medium
	})

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		acc := b.buckets[key]
		aov := safeDiv(acc.total, fromInt(acc.orders))
		rows = append(rows, []string{
			key.channel,
			key.medium,
			count(acc.orders),
			count(len(acc.customers)),
			money(acc.total),
			money(aov),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
