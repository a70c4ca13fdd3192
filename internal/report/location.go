package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

// Placeholders for customers whose address is missing a field or
// missing entirely. Such customers are still counted, under the
// ("ZZ", "ZZ", "Unknown") bucket, never dropped.
const (
	unknownCity    = "Unknown"
	unknownRegion  = "ZZ"
	unknownCountry = "ZZ"
)

var locationColumns = []string{
	"Country",
	"Region",
	"City",
	"Customers",
	"Orders",
	"Total_sales",
	"Average_order_value",
}

type locationKey struct {
	country string
	region  string
	city    string
}

type locationAccumulator struct {
	customers map[string]bool
	orders    int
	total     decimal.Decimal
}

// locationReport buckets customers and their orders by the
// (country, region, city) tuple of the customer's default address.
type locationReport struct {
	skipCounter
	buckets map[locationKey]*locationAccumulator
}

func newLocationReport() *locationReport {
	return &locationReport{buckets: make(map[locationKey]*locationAccumulator)}
}

func (b *locationReport) Name() string { return Location }

func (b *locationReport) Columns() []string { return locationColumns }

func locationOf(c *export.Customer) locationKey {
	key := locationKey{country: unknownCountry, region: unknownRegion, city: unknownCity}
	if c.Address == nil {
		return key
	}
	if c.Address.Country != "" {
		key.country = c.Address.Country
	}
	if c.Address.Province != "" {
		key.region = c.Address.Province
	}
	if c.Address.City != "" {
		key.city = c.Address.City
	}
	return key
}

func (b *locationReport) Fold(root *export.Record) {
	if root.Kind != export.KindCustomer {
		log.Warningf("location report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	c := root.Customer

	key := locationOf(c)
	acc, ok := b.buckets[key]
	if !ok {
		acc = &locationAccumulator{customers: make(map[string]bool)}
		b.buckets[key] = acc
	}
	acc.customers[c.ID] = true
	acc.orders += len(c.Orders)
	for _, o := range c.Orders {
		acc.total = acc.total.Add(o.Total)
	}
}

func (b *locationReport) Table() *Table {
	keys := make([]locationKey, 0, len(b.buckets))
	for key := range b.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].country != keys[j].country {
			return keys[i].country < keys[j].country
		}
		if keys[i].region != keys[j].region {
			return keys[i].region < keys[j].region
		}
		return keys[i].city < keys[j].city
	})

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		acc := b.buckets[key]
		aov := safeDiv(acc.total, fromInt(acc.orders))
		rows = append(rows, []string{
			key.country,
			key.region,
			key.city,
			count(len(acc.customers)),
			count(acc.orders),
			money(acc.total),
			money(aov),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}
