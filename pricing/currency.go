package pricing

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts cross persistence and display boundaries as integer cents.
// Floating point stays internal to ComputePrice.

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatMinorUnits renders cents as a Brazilian Real display string,
// e.g. 1470 → "R$ 14,70".
func FormatMinorUnits(cents int64) string {
	return ptBR.Sprintf("R$ %.2f", float64(cents)/100)
}

// ToMinorUnits converts a computed amount to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ParseToMinorUnits reads a currency string into cents. It accepts comma
// or dot separators in either role: the last separator group is treated
// as the decimal part (a single digit is padded, more than two are
// truncated) and any earlier separators must delimit exact groups of
// three digits. Anything else — "1,2,3", no digits at all — returns
// ok=false rather than an error, so callers can branch cheaply.
func ParseToMinorUnits(text string) (int64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if !strings.ContainsAny(s, "0123456789") {
		return 0, false
	}

	idx := strings.LastIndexAny(s, ",.")
	if idx == -1 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n * 100, true
	}

	intPart, fracPart := s[:idx], s[idx+1:]
	if len(fracPart) == 1 {
		fracPart += "0"
	}
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}

	// Any separator left of the decimal must be a thousands separator,
	// so every inner group has to be exactly three digits.
	groups := strings.Split(strings.ReplaceAll(intPart, ",", "."), ".")
	for i, g := range groups {
		if i > 0 && len(g) != 3 {
			return 0, false
		}
	}

	digits := strings.Join(groups, "")
	if digits == "" {
		digits = "0"
	}
	whole, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	var frac int64
	if fracPart != "" {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, false
		}
	}

	return whole*100 + frac, true
}
