package view

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary value with thousands separators.
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
