package usecase

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	currencySymbol = "₦"
	zeroValue      = "₦0"
	zeroGrowth     = "+0.0%"
)

// scale is a value suffix and its multiplier, largest first.
type scale struct {
	suffix string
	factor decimal.Decimal
}

var scales = []scale{
	{"T", decimal.New(1, 12)},
	{"B", decimal.New(1, 9)},
	{"M", decimal.New(1, 6)},
	{"K", decimal.New(1, 3)},
}

// ParseValue reads display values such as "₦4.2T", "$300M" or "1,250,000".
// A leading currency symbol and thousands separators are ignored.
func ParseValue(s string) (decimal.Decimal, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "₦$€£ ")
	s = strings.TrimPrefix(s, "NGN")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	factor := decimal.NewFromInt(1)
	for _, sc := range scales {
		if strings.HasSuffix(s, sc.suffix) {
			factor = sc.factor
			s = strings.TrimSpace(strings.TrimSuffix(s, sc.suffix))
			break
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d.Mul(factor), true
}

// FormatValue renders d with the largest suffix it reaches, e.g. "₦25.8T".
func FormatValue(d decimal.Decimal) string {
	if !d.IsPositive() {
		return zeroValue
	}
	for _, sc := range scales {
		if d.GreaterThanOrEqual(sc.factor) {
			return currencySymbol + d.Div(sc.factor).Round(1).String() + sc.suffix
		}
	}
	return currencySymbol + d.Round(0).String()
}

// ParseGrowth reads percentages such as "+12.5%" or "-3%".
func ParseGrowth(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatGrowth renders d with an explicit sign and one decimal, e.g. "+12.3%".
func FormatGrowth(d decimal.Decimal) string {
	s := d.StringFixed(1)
	if !d.IsNegative() && !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// CombinedValue sums every parsable value. Unparsable values are skipped.
func CombinedValue(values []string) string {
	total := decimal.Zero
	for _, v := range values {
		if d, ok := ParseValue(v); ok {
			total = total.Add(d)
		}
	}
	return FormatValue(total)
}

// AverageGrowth is the mean of every parsable growth rate.
func AverageGrowth(rates []string) string {
	sum := decimal.Zero
	n := int64(0)
	for _, r := range rates {
		if d, ok := ParseGrowth(r); ok {
			sum = sum.Add(d)
			n++
		}
	}
	if n == 0 {
		return zeroGrowth
	}
	return FormatGrowth(sum.Div(decimal.NewFromInt(n)))
}
