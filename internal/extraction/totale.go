package extraction

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// totalePattern matches only the grand-total label. Other "Totale ..."
// rows (sub-totals, VAT totals) must not match.
var totalePattern = regexp.MustCompile(`(?i)totale\s*onorari`)

// MatchTotale extracts the invoice grand total: the first amount on the
// first "Totale Onorari" line that carries any, falling back to the
// immediately following line when label and value are split.
func MatchTotale(lines []string) (decimal.Decimal, bool) {
	for i, line := range lines {
		if !totalePattern.MatchString(line) {
			continue
		}
		values := amountsForLabelLine(lines, i)
		if len(values) == 0 {
			continue
		}
		return values[0], true
	}
	return decimal.Decimal{}, false
}
