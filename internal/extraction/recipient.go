package extraction

import (
	"regexp"
	"strings"
)

var (
	// recipientStartPattern marks the line opening the addressee block.
	recipientStartPattern = regexp.MustCompile(`(?i)(?:spett\.le|spett/le|cliente|destinatario)\s*[:.]?`)

	// recipientStopPattern ends the block: once fiscal or invoice
	// headers appear the address is over.
	recipientStopPattern = regexp.MustCompile(`(?i)P\.?IVA|Codice|Data|Fattura`)
)

// maxAddressLines bounds how far below the opening line the block may
// extend.
const maxAddressLines = 4

// MatchRecipient finds the addressee block. The text on the opening
// line (after the label) is the company name; when the label stands
// alone the next line is. Following lines up to the first fiscal
// keyword are joined into the address.
func MatchRecipient(lines []string) (name, address string, ok bool) {
	for i, line := range lines {
		if !recipientStartPattern.MatchString(line) {
			continue
		}

		var block []string
		if cleaned := strings.TrimSpace(recipientStartPattern.ReplaceAllString(line, "")); len(cleaned) > 2 {
			block = append(block, cleaned)
		}
		for j := i + 1; j < len(lines) && j <= i+maxAddressLines; j++ {
			if recipientStopPattern.MatchString(lines[j]) {
				break
			}
			block = append(block, lines[j])
		}

		if len(block) == 0 {
			return "", "", false
		}
		name = block[0]
		if len(block) > 1 {
			address = strings.Join(block[1:], " ")
		}
		return name, address, true
	}
	return "", "", false
}
