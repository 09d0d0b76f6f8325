// Package money formats integer đồng amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Vietnamese)

// Format renders an amount with Vietnamese digit grouping, e.g. 10000 -> "10.000đ".
func Format(amount int) string {
	return printer.Sprintf("%d", amount) + "đ"
}
