package report

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// safeDiv applies the pipeline-wide zero-denominator rule: a rate or
// average with a zero divisor is 0, never an error or NaN.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, 6)
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func rate(d decimal.Decimal) string { return d.StringFixed(2) }

func count(n int) string { return strconv.Itoa(n) }

func fromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
