package payments

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is an amount of Brazilian reais in centavos.
type Cents int64

// DefaultMonthlyFee is the per-month contribution of each collaborator.
const DefaultMonthlyFee Cents = 6307

// FormatBRL renders an amount as "R$ 1.234,56".
func FormatBRL(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	whole := strconv.FormatInt(int64(c/100), 10)
	frac := int64(c % 100)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}

// ParseAmount reads "63.07", "63,07", "R$ 1.234,56" or "50" into centavos.
// A comma, when present, is the decimal separator and dots are grouping.
func ParseAmount(s string) (Cents, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "R$"))
	if raw == "" {
		return 0, fmt.Errorf("parse amount %q: empty", s)
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}

	whole, frac, hasFrac := strings.Cut(raw, ".")
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("parse amount %q: want at most two decimal places", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
	} else {
		frac = "00"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("parse amount %q: invalid whole part", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("parse amount %q: invalid decimal part", s)
	}
	return Cents(w*100 + f), nil
}
