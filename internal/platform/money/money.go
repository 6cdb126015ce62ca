// Package money formats live cost amounts for a free-form currency code.
package money

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const FallbackCurrency = "USD"

const fallbackScale = 2

var printer = message.NewPrinter(language.English)

// NormalizeCode trims and upper-cases code; an empty code becomes FallbackCurrency.
// Unknown codes are kept as typed.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return FallbackCurrency
	}
	return code
}

// IsISO reports whether code is a known ISO 4217 currency.
func IsISO(code string) bool {
	_, err := currency.ParseISO(NormalizeCode(code))
	return err == nil
}

// Format renders amount with the currency's standard number of decimals,
// grouped the English way, prefixed by the code ("EUR 1,234.50").
func Format(amount float64, code string) string {
	code = NormalizeCode(code)
	scale := fallbackScale
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	return printer.Sprintf("%s %v", code, number.Decimal(amount, number.Scale(scale)))
}
