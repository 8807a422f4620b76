package service

import "github.com/shopspring/decimal"

// TotalCategoria accumulates signed amounts for one category. Ingresos sums the
// positive records, Egresos the absolute value of the negative ones (a voided
// sale leaves its original payment in place and adds an inverse record, so the
// same stream carries both). Neto = Ingresos − Egresos.
type TotalCategoria struct {
	Neto     decimal.Decimal
	Ingresos decimal.Decimal
	Egresos  decimal.Decimal
}

// Agregar classifies each record and accumulates its amount into the per-category
// totals, splitting positives and negatives. Every canonical category is present
// in the result even when empty.
func Agregar[T any](registros []T, clasificar func(T) Categoria, monto func(T) decimal.Decimal) map[Categoria]TotalCategoria {
	totales := make(map[Categoria]TotalCategoria, len(Categorias))
	for _, c := range Categorias {
		totales[c] = TotalCategoria{}
	}
	for _, r := range registros {
		c := clasificar(r)
		t := totales[c]
		m := monto(r)
		if m.IsNegative() {
			t.Egresos = t.Egresos.Add(m.Neg())
		} else {
			t.Ingresos = t.Ingresos.Add(m)
		}
		t.Neto = t.Ingresos.Sub(t.Egresos)
		totales[c] = t
	}
	return totales
}
