package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches locale-formatted amounts such as "250,00" or
// "1.234,56": up to three leading digits, optional thousands groups,
// and a mandatory two-digit decimal part.
var amountPattern = regexp.MustCompile(`\b\d{1,3}(?:[.,]\d{3})*[.,]\d{2}\b`)

// noiseThreshold filters the zero-ish tokens the text layer sometimes
// produces around table borders.
var noiseThreshold = decimal.NewFromFloat(0.01)

// ParseAmount parses a single amount token. The rightmost of "," and
// "." is treated as the decimal mark and every other separator as a
// thousands separator, so both "1.234,56" and "1,234.56" parse to the
// same value. Currency symbols and surrounding whitespace are ignored.
func ParseAmount(token string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(token, "€", ""))
	if s == "" {
		return decimal.Decimal{}, false
	}

	sep := strings.LastIndexAny(s, ",.")
	if sep >= 0 {
		intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:sep])
		s = intPart + "." + s[sep+1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// amountsInLine extracts every parsable amount on a line, in scan
// order. Malformed tokens and noise values are dropped silently.
func amountsInLine(line string) []decimal.Decimal {
	var values []decimal.Decimal
	for _, token := range amountPattern.FindAllString(line, -1) {
		v, ok := ParseAmount(token)
		if !ok || v.LessThanOrEqual(noiseThreshold) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// amountsForLabelLine returns the amounts on the label line itself or,
// when the layout splits label and value across lines, the amounts on
// the immediately following line. It never looks further down.
func amountsForLabelLine(lines []string, idx int) []decimal.Decimal {
	values := amountsInLine(lines[idx])
	if len(values) == 0 && idx+1 < len(lines) {
		values = amountsInLine(lines[idx+1])
	}
	return values
}
