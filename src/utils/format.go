package utils

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatDollars renders v as $1,234.57. Negative values keep their sign after the symbol.
func FormatDollars(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}

	return printer.Sprintf("$%.2f", v)
}

func FormatNumber(v float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
