package series

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders label numbers for a locale.
type Formatter struct {
	printer  *message.Printer
	decimals int
}

// NewFormatter returns a formatter for tag that shows at most decimals
// fraction digits.
func NewFormatter(tag language.Tag, decimals int) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag), decimals: max(decimals, 0)}
}

var defaultFormatter = NewFormatter(language.English, 2)

// Decimal formats v with locale grouping and decimal separators.
func (f *Formatter) Decimal(v float64) string {
	if f == nil {
		f = defaultFormatter
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(f.decimals)))
}

// Percent formats a fraction in [0, 1] as a percentage.
func (f *Formatter) Percent(frac float64) string {
	if f == nil {
		f = defaultFormatter
	}
	return f.printer.Sprint(number.Percent(frac, number.MaxFractionDigits(f.decimals)))
}
