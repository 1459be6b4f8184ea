package extraction

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// compensiPattern matches the professional-fee labels: "Compensi
// dovuti", bare "Onorari" and "Attività di assistenza" all introduce
// the fee row on the layouts seen in production.
var compensiPattern = regexp.MustCompile(`(?i)compensi|onorari|attivit[aà]\s*di\s*assistenza`)

// MatchCompensi extracts the professional-fee amount. Amounts from
// every label line are pooled and the maximum wins: the fee row usually
// carries a quantity column ("1,00") that is always smaller than the
// fee itself, so the maximum is more robust than positional parsing.
// Lines carrying the grand-total label also say "Onorari" and belong to
// MatchTotale, so they are skipped here.
func MatchCompensi(lines []string) (decimal.Decimal, bool) {
	var pool []decimal.Decimal
	for i, line := range lines {
		if !compensiPattern.MatchString(line) || totalePattern.MatchString(line) {
			continue
		}
		pool = append(pool, amountsForLabelLine(lines, i)...)
	}
	if len(pool) == 0 {
		return decimal.Decimal{}, false
	}

	max := pool[0]
	for _, v := range pool[1:] {
		if v.GreaterThan(max) {
			max = v
		}
	}
	return max, true
}
