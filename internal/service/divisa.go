package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// factorCambioRe matches the first decimal number in an annotation tail.
// The decimal separator may be "." or "," ("," is normalized before parsing).
var factorCambioRe = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// NormalizarDivisa converts a foreign-currency amount to local currency using a
// human-authored exchange-rate annotation of the form "<algo> = <factor> <algo>"
// (e.g. "1 = 26.27 lps"). The factor is the first decimal number after the
// first '=' sign. The conversion fails open: when no factor can be parsed, or
// the parsed factor is not positive, the amount is returned unchanged — a
// cosmetic data-quality issue must never block a drawer close. The result keeps
// 6 fractional digits so precision is not lost before aggregation.
func NormalizarDivisa(monto decimal.Decimal, anotacion string) decimal.Decimal {
	_, resto, ok := strings.Cut(anotacion, "=")
	if !ok {
		return monto
	}
	resto = strings.ReplaceAll(resto, ",", ".")
	literal := factorCambioRe.FindString(resto)
	if literal == "" {
		return monto
	}
	factor, err := decimal.NewFromString(literal)
	if err != nil || !factor.IsPositive() {
		return monto
	}
	return monto.DivRound(factor, 6)
}
