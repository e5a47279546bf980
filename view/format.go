package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders monetary values for display.
type Formatter struct {
	Symbol  string
	printer *message.Printer
}

// NewFormatter returns a Formatter using the grouping rules of lang.
func NewFormatter(symbol string, lang language.Tag) Formatter {
	return Formatter{Symbol: symbol, printer: message.NewPrinter(lang)}
}

// DefaultFormatter formats dollars with English grouping: $1,234.50.
func DefaultFormatter() Formatter {
	return NewFormatter("$", language.English)
}

// Money formats v with two decimals, grouping separators and the symbol.
// Negative values keep the sign in front of the symbol.
func (f Formatter) Money(v float64) string {
	if v < 0 {
		return "-" + f.Symbol + f.Number(-v)
	}
	return f.Symbol + f.Number(v)
}

// Number formats v with two decimals and grouping, without a symbol.
func (f Formatter) Number(v float64) string {
	return f.p().Sprintf("%.2f", v)
}

// Percent formats an annual rate such as 5.25%.
func (f Formatter) Percent(v float64) string {
	return f.p().Sprintf("%.2f%%", v)
}

// Count formats an integer with grouping, e.g. 1,200.
func (f Formatter) Count(n int) string {
	return f.p().Sprintf("%d", n)
}

func (f Formatter) p() *message.Printer {
	if f.printer == nil {
		return message.NewPrinter(language.English)
	}
	return f.printer
}
