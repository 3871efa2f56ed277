// Package format renders numeric values as display strings for tooltips,
// legends, and labels.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind selects the unit convention for rendering.
type Kind string

const (
	KindNumber   Kind = "number"
	KindPercent  Kind = "percent"
	KindCurrency Kind = "currency"
)

// NoValue is rendered for missing or non-finite values.
const NoValue = "N/A"

// Formatter renders values under a fixed locale. The zero value is not
// usable; construct with New.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// Options configures a Formatter. Zero fields fall back to en-US and "$".
type Options struct {
	Tag            language.Tag
	CurrencySymbol string
}

// New creates a Formatter.
func New(opts Options) *Formatter {
	tag := opts.Tag
	if tag == (language.Tag{}) {
		tag = language.AmericanEnglish
	}
	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders a value under the given unit convention. Missing or
// non-finite values render as NoValue. An unrecognized kind falls back to
// plain number formatting.
func (f *Formatter) Format(v *float64, kind Kind) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return NoValue
	}
	switch kind {
	case KindPercent:
		// Input is a fractional ratio: 0.045 renders as "4.5%".
		return f.printer.Sprintf("%v%%",
			number.Decimal(*v*100, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	case KindCurrency:
		// Whole-unit amounts; fractional cents are rounded away.
		return f.printer.Sprintf("%s%v", f.symbol, number.Decimal(math.Round(*v)))
	default:
		return f.printer.Sprintf("%v", number.Decimal(*v))
	}
}

var defaultFormatter = New(Options{})

// Format renders a value with the default en-US formatter.
func Format(v *float64, kind Kind) string {
	return defaultFormatter.Format(v, kind)
}
