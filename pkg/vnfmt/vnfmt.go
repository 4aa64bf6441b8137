// Package vnfmt formats monetary amounts for the report surfaces.
// Plan figures are VND with Vietnamese digit grouping (1.234.567),
// while USD unit prices keep the en-US convention (1,234.50).
package vnfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	viPrinter = message.NewPrinter(language.Vietnamese)
	enPrinter = message.NewPrinter(language.AmericanEnglish)
)

// VND renders a VND amount rounded to whole dong with vi-VN grouping.
func VND(d decimal.Decimal) string {
	v, _ := d.Round(0).Float64()
	return viPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// USD renders a USD amount with two decimals and en-US grouping.
func USD(d decimal.Decimal) string {
	v, _ := d.Float64()
	return enPrinter.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Qty renders a kilogram quantity with vi-VN grouping, trimming to at
// most one decimal place.
func Qty(d decimal.Decimal) string {
	v, _ := d.Float64()
	return viPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}

// Pct renders a percentage value (already in percent units, e.g. 5 = 5%).
func Pct(d decimal.Decimal) string {
	v, _ := d.Float64()
	return viPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + "%"
}
