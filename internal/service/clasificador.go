package service

import "strings"

// Categoria is the canonical payment category a free-text label resolves to.
type Categoria string

const (
	CategoriaEfectivo      Categoria = "efectivo"
	CategoriaTarjeta       Categoria = "tarjeta"
	CategoriaTransferencia Categoria = "transferencia"
	CategoriaDivisa        Categoria = "divisa"
)

// Categorias lists the four canonical categories in display order.
var Categorias = []Categoria{
	CategoriaEfectivo,
	CategoriaTarjeta,
	CategoriaTransferencia,
	CategoriaDivisa,
}

// reglasCategoria is evaluated in order; the first keyword hit wins.
var reglasCategoria = []struct {
	categoria Categoria
	claves    []string
}{
	{CategoriaEfectivo, []string{"efectivo", "cash"}},
	{CategoriaTarjeta, []string{"tarjeta", "card"}},
	{CategoriaTransferencia, []string{"transferencia", "transfer"}},
	{CategoriaDivisa, []string{"dolar", "usd"}},
}

// ClasificarCategoria maps a free-text payment/movement label to one of the
// four canonical categories by case-insensitive substring matching. Labels that
// match no keyword default to efectivo: unclassified movements are conservatively
// attributed to the drawer being reconciled.
func ClasificarCategoria(etiqueta string) Categoria {
	etiqueta = strings.ToLower(etiqueta)
	for _, regla := range reglasCategoria {
		for _, clave := range regla.claves {
			if strings.Contains(etiqueta, clave) {
				return regla.categoria
			}
		}
	}
	return CategoriaEfectivo
}
