package extraction

import (
	"regexp"
	"strings"
)

// numberPattern matches invoice-number-shaped tokens: digits with
// optional "/" or "-" separators and an optional letter part, e.g.
// "105", "2023/12", "64/E".
var numberPattern = regexp.MustCompile(`(?i)\b[A-Z0-9][A-Z0-9\-/]{0,15}\b`)

// MatchNumber finds the invoice identifier. Dates, street numbers on
// address lines, page numbers, bare years and header words are all
// rejected. A date check on the token alone is not enough: dot and dash
// separators break a date into bare digit tokens ("12.05.2025" yields
// "12"), so tokens are also rejected when their position falls inside a
// date match on the full line. Alphanumeric codes such as "64/E" are
// unambiguous and outrank plain integers; among equals the first
// occurrence in document order wins.
func MatchNumber(lines []string) (string, bool) {
	var plain string
	var plainFound bool

	for _, line := range lines {
		if isAddressLine(line) {
			continue
		}
		dates := datePattern.FindAllStringIndex(line, -1)
		for _, span := range numberPattern.FindAllStringIndex(line, -1) {
			token := line[span[0]:span[1]]
			if !containsDigit(token) {
				continue
			}
			if isDate(token) || isYear(token) || isForbiddenWord(token) {
				continue
			}
			if insideAny(dates, span[0], span[1]) {
				continue
			}
			if followsPageLabel(line[:span[0]]) {
				continue
			}
			if strings.ContainsAny(token, "/-") || containsLetter(token) {
				return token, true
			}
			if !plainFound {
				plain = token
				plainFound = true
			}
		}
	}

	return plain, plainFound
}
