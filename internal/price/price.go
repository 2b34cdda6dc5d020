// Package price converts free-form menu price strings to integer cents.
package price

import (
	"math"
	"strconv"
	"strings"
)

var stripper = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	",", "",
	" ", "",
)

// ParseCents converts a string like "22.90", "$22.90" or "1,234.50" to
// cents, rounding half-up. Nil means no price: the input was empty or not
// a decimal number.
func ParseCents(s string) *int64 {
	s = stripper.Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}

	cents := int64(math.Round(f * 100))
	return &cents
}
