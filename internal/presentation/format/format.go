// Package format turns raw resource fields into the display strings
// the screens show. All functions are pure.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Date formats a date the way the screens show it, day first.
// Example: 15/01/2026. A nil or zero time renders empty.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// DateTime formats a timestamp with minutes.
// Example: 15/01/2026 14:30.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// Money formats an amount with its currency. VND shows no decimal
// places; everything else gets two. Separators follow the locale:
// Vietnamese groups with "." and uses "," for decimals.
// Example: Money(1500000, "VND", vi) -> "1.500.000 ₫".
func Money(amount decimal.Decimal, currency string, tag language.Tag) string {
	places := int32(2)
	if currency == "" || currency == "VND" {
		places = 0
	}
	group, point := ",", "."
	if tag == language.Vietnamese {
		group, point = ".", ","
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	parts := strings.SplitN(amount.StringFixed(places), ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(c)
	}

	out := sign + b.String()
	if len(parts) > 1 {
		out += point + parts[1]
	}
	return out + " " + currencySymbol(currency)
}

func currencySymbol(currency string) string {
	switch currency {
	case "", "VND":
		return "₫"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	default:
		return currency
	}
}
