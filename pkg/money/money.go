// Package money formatea montos en reales (BRL) para la capa de presentación.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol símbolo local del real.
const Symbol = "R$"

// Currency código ISO 4217 usado en las respuestas.
var Currency = currency.BRL

var printer = message.NewPrinter(language.BrazilianPortuguese)

type compactStep struct {
	min    decimal.Decimal
	suffix string
}

// Escalas de la notación compacta pt-BR, de mayor a menor.
var compactSteps = []compactStep{
	{decimal.New(1, 12), "tri"},
	{decimal.New(1, 9), "bi"},
	{decimal.New(1, 6), "mi"},
	{decimal.New(1, 3), "mil"},
}

// FormatBRL formato completo: "R$ 14.200,00".
func FormatBRL(v decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(Currency)
	return Symbol + " " + formatNumber(v.Round(int32(scale)), scale)
}

// FormatCompact notación compacta: "R$ 14 mil", "R$ 1,7 mil", "R$ 850".
// Se conservan dos dígitos significativos cuando la parte entera tiene uno solo.
func FormatCompact(v decimal.Decimal) string {
	abs := v.Abs()
	scaled := v
	suffix := ""
	for _, st := range compactSteps {
		if abs.GreaterThanOrEqual(st.min) {
			scaled = v.Div(st.min)
			suffix = " " + st.suffix
			break
		}
	}

	places := 0
	if scaled.Abs().LessThan(decimal.NewFromInt(10)) {
		places = 1
	}
	rounded := scaled.Round(int32(places))
	if places == 1 && rounded.Equal(rounded.Truncate(0)) {
		places = 0
	}
	return Symbol + " " + formatNumber(rounded, places) + suffix
}

func formatNumber(v decimal.Decimal, places int) string {
	f := v.InexactFloat64()
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(places),
		number.MaxFractionDigits(places),
	))
}
