package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClasificarCategoria(t *testing.T) {
	casos := map[string]Categoria{
		"Efectivo":             CategoriaEfectivo,
		"pago en EFECTIVO":     CategoriaEfectivo,
		"cash":                 CategoriaEfectivo,
		"Tarjeta de credito":   CategoriaTarjeta,
		"tarjeta debito":       CategoriaTarjeta,
		"Card":                 CategoriaTarjeta,
		"Transferencia BAC":    CategoriaTransferencia,
		"transfer":             CategoriaTransferencia,
		"Dolares":              CategoriaDivisa,
		"pago USD":             CategoriaDivisa,
		"dolar americano":      CategoriaDivisa,
	}
	for etiqueta, esperado := range casos {
		assert.Equal(t, esperado, ClasificarCategoria(etiqueta), "etiqueta %q", etiqueta)
	}
}

func TestClasificarCategoriaDefaultEfectivo(t *testing.T) {
	// Etiquetas sin palabra clave se atribuyen conservadoramente al efectivo,
	// que es el saldo que se concilia.
	for _, etiqueta := range []string{"", "otro", "cheque", "???", "   ", "pago movil"} {
		assert.Equal(t, CategoriaEfectivo, ClasificarCategoria(etiqueta))
	}
}

func TestClasificarCategoriaTotal(t *testing.T) {
	// Para cualquier cadena ASCII imprimible el resultado es exactamente una
	// de las cuatro categorias canonicas.
	valida := map[Categoria]bool{
		CategoriaEfectivo:      true,
		CategoriaTarjeta:       true,
		CategoriaTransferencia: true,
		CategoriaDivisa:        true,
	}
	for b := byte(32); b < 127; b++ {
		etiqueta := string([]byte{b, b, b})
		assert.True(t, valida[ClasificarCategoria(etiqueta)], "etiqueta %q", etiqueta)
	}
}
