package extraction

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// spesePattern matches the general-expenses labels: "Spese generali",
// the bare "15 %" rate, or the "ex D.M." legal reference.
var spesePattern = regexp.MustCompile(`(?i)spese\s*generali|15\s*%|ex\s*D\.M\.`)

// MatchSpeseGenerali extracts the general-expenses surcharge: the last
// amount on the first label line that carries any. This row's layout
// consistently puts the row total in the rightmost column, unlike the
// fee row, so the tie-break differs from MatchCompensi on purpose.
func MatchSpeseGenerali(lines []string) (decimal.Decimal, bool) {
	for i, line := range lines {
		if !spesePattern.MatchString(line) {
			continue
		}
		values := amountsForLabelLine(lines, i)
		if len(values) == 0 {
			continue
		}
		return values[len(values)-1], true
	}
	return decimal.Decimal{}, false
}
