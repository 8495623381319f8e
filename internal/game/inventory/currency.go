package inventory

import (
	"strconv"
	"strings"
)

// CurrencySymbol is appended to formatted money amounts.
const CurrencySymbol = "yen"

// FormatMoney returns amount with thousands separators and the currency symbol.
//
// Postcondition: FormatMoney(1234567) == "1,234,567 yen"; negative amounts keep their sign.
func FormatMoney(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	b.WriteByte(' ')
	b.WriteString(CurrencySymbol)
	return b.String()
}
