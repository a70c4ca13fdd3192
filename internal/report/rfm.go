package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
)

// RFM group labels, best to worst. NewGroup is not part of the band
// ladder: a customer with exactly one qualifying order lands there no
// matter what its scores say.
const (
	NewGroup       = "New"
	HighValueGroup = "High-Value"
	LoyalGroup     = "Loyal"
	AtRiskGroup    = "At-Risk"
	LostGroup      = "Lost"
)

// RFMThresholds are the four ascending boundaries per dimension. They
// are configuration data (loaded from YAML), not constants baked into
// the scoring code.
type RFMThresholds struct {
	Recency   [4]int     `yaml:"recency" json:"recency"`     // days since last order
	Frequency [4]int     `yaml:"frequency" json:"frequency"` // qualifying orders
	Monetary  [4]float64 `yaml:"monetary" json:"monetary"`   // net spend
}

func DefaultThresholds() *RFMThresholds {
	return &RFMThresholds{
		Recency:   [4]int{30, 90, 180, 365},
		Frequency: [4]int{1, 3, 5, 10},
		Monetary:  [4]float64{100, 500, 1000, 5000},
	}
}

func (t *RFMThresholds) Validate() error {
	for i := 1; i < 4; i++ {
		if t.Recency[i] <= t.Recency[i-1] {
			return fmt.Errorf("recency thresholds must be strictly ascending")
		}
		if t.Frequency[i] <= t.Frequency[i-1] {
			return fmt.Errorf("frequency thresholds must be strictly ascending")
		}
		if t.Monetary[i] <= t.Monetary[i-1] {
			return fmt.Errorf("monetary thresholds must be strictly ascending")
		}
	}
	return nil
}

var rfmColumns = []string{
	"Customer_id",
	"Recency_days",
	"Frequency",
	"Monetary",
	"R_score",
	"F_score",
	"M_score",
	"Rfm_group",
}

type rfmEntry struct {
	id        string
	latest    time.Time
	frequency int
	monetary  decimal.Decimal
}

// rfmReport scores every customer, one row each; customers without a
// single qualifying order still get a zero-valued row.
type rfmReport struct {
	skipCounter
	thresholds *RFMThresholds
	now        time.Time
	latestSeen time.Time
	entries    map[string]*rfmEntry
}

func newRFMReport(t *RFMThresholds, now time.Time) *rfmReport {
	return &rfmReport{
		thresholds: t,
		now:        now,
		entries:    make(map[string]*rfmEntry),
	}
}

func (b *rfmReport) Name() string { return RFM }

func (b *rfmReport) Columns() []string { return rfmColumns }

func (b *rfmReport) Fold(root *export.Record) {
	if root.Kind != export.KindCustomer {
		log.Warningf("rfm report ignoring %s root %s", root.Kind, root.ID)
		return
	}
	c := root.Customer

	entry := &rfmEntry{id: c.ID}
	for _, o := range c.Orders {
		if o.CreatedAt.IsZero() {
			// An undated order is not a qualifying one; its money
			// does not count either.
			b.skipped++
			continue
		}
		entry.frequency++
		entry.monetary = entry.monetary.Add(netSpend(o))
		if o.CreatedAt.After(entry.latest) {
			entry.latest = o.CreatedAt
		}
	}
	if entry.latest.After(b.latestSeen) {
		b.latestSeen = entry.latest
	}
	b.entries[c.ID] = entry
}

// netSpend is the monetary contribution of one order: what the
// customer actually paid after refunds.
func netSpend(o *export.Order) decimal.Decimal {
	return o.Total.Sub(o.Refunded.Abs())
}

func (b *rfmReport) Table() *Table {
	now := b.now
	if now.IsZero() {
		now = b.latestSeen
	}

	ids := make([]string, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		e := b.entries[id]
		if e.frequency == 0 {
			rows = append(rows, []string{
				e.id, "0", "0", money(decimal.Zero), "0", "0", "0", LostGroup,
			})
			continue
		}

		recencyDays := int(now.Sub(e.latest).Hours() / 24)
		if recencyDays < 0 {
			recencyDays = 0
		}
		r := scoreRecency(recencyDays, b.thresholds.Recency)
		f := scoreFrequency(e.frequency, b.thresholds.Frequency)
		m := scoreMonetary(e.monetary, b.thresholds.Monetary)

		rows = append(rows, []string{
			e.id,
			count(recencyDays),
			count(e.frequency),
			money(e.monetary),
			count(r),
			count(f),
			count(m),
			groupFor(e.frequency, r, f, m),
		})
	}
	return &Table{Name: b.Name(), Columns: b.Columns(), Rows: rows}
}

// scoreRecency walks the ascending day thresholds; fewer days since
// the last order is better, so the first rung scores 5.
func scoreRecency(days int, t [4]int) int {
	for i, th := range t {
		if days <= th {
			return 5 - i
		}
	}
	return 1
}

// scoreFrequency walks the ascending order-count thresholds; more
// orders is better, so falling past the last rung scores 5.
func scoreFrequency(orders int, t [4]int) int {
	for i, th := range t {
		if orders <= th {
			return i + 1
		}
	}
	return 5
}

func scoreMonetary(spend decimal.Decimal, t [4]float64) int {
	for i, th := range t {
		if spend.LessThanOrEqual(decimal.NewFromFloat(th)) {
			return i + 1
		}
	}
	return 5
}

// groupFor picks the customer's segment. The single-order "New"
// override comes first: it wins even when the scores alone would read
// High-Value.
func groupFor(frequency, r, f, m int) string {
	if frequency == 1 {
		return NewGroup
	}
	mean := float64(r+f+m) / 3.0
	switch {
	case mean >= 4:
		return HighValueGroup
	case mean >= 3:
		return LoyalGroup
	case mean >= 2:
		return AtRiskGroup
	default:
		return LostGroup
	}
}
