package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func linea(precio float64, cantidad int) LineaGravable {
	return LineaGravable{Precio: decimal.NewFromFloat(precio), Cantidad: cantidad}
}

func tasasPrueba() TasasImpuesto {
	return TasasImpuesto{
		ISV:        decimal.NewFromFloat(0.15),
		ISVAlterna: decimal.NewFromFloat(0.18),
		Turismo:    decimal.NewFromFloat(0.04),
	}
}

func TestImpuestoTasaEstandar(t *testing.T) {
	// 100.00 × 1, no exento, sin turismo: ISV 15.00, lo demas en cero.
	d := CalcularImpuestoLinea(linea(100, 1), tasasPrueba())

	assert.Equal(t, "100", d.Neto.String())
	assert.Equal(t, "15", d.ISV.Round(2).String())
	assert.True(t, d.ISVAlterna.IsZero())
	assert.True(t, d.Turismo.IsZero())
	assert.Equal(t, "115", d.Total().Round(2).String())
}

func TestImpuestoTasaAlterna(t *testing.T) {
	l := linea(100, 2)
	l.TasaAlterna = true
	d := CalcularImpuestoLinea(l, tasasPrueba())

	assert.Equal(t, "200", d.Neto.String())
	assert.True(t, d.ISV.IsZero())
	assert.Equal(t, "36", d.ISVAlterna.Round(2).String())
}

func TestImpuestoExentoSiempreCero(t *testing.T) {
	// Exencion gana sobre cualquier combinacion de banderas y tasas.
	l := linea(250.50, 3)
	l.Exento = true
	l.TasaAlterna = true
	l.Turismo = true

	d := CalcularImpuestoLinea(l, tasasPrueba())
	assert.True(t, d.ISV.IsZero())
	assert.True(t, d.ISVAlterna.IsZero())
	assert.True(t, d.Turismo.IsZero())
	assert.Equal(t, "751.5", d.Neto.String())
	assert.Equal(t, "751.5", d.Total().String())

	// Tambien con tasas vacias (defaults).
	d = CalcularImpuestoLinea(l, TasasImpuesto{})
	assert.True(t, d.ISV.IsZero())
	assert.True(t, d.Turismo.IsZero())
}

func TestImpuestoTurismoAditivo(t *testing.T) {
	l := linea(100, 1)
	l.Turismo = true
	d := CalcularImpuestoLinea(l, tasasPrueba())

	assert.Equal(t, "15", d.ISV.Round(2).String())
	assert.Equal(t, "4", d.Turismo.Round(2).String())

	// Turismo sobre tasa alterna: 18 + 4.
	l.TasaAlterna = true
	d = CalcularImpuestoLinea(l, tasasPrueba())
	assert.Equal(t, "18", d.ISVAlterna.Round(2).String())
	assert.Equal(t, "4", d.Turismo.Round(2).String())
}

func TestImpuestoAditividad(t *testing.T) {
	// La suma de las porciones reportadas equivale a neto × tasa combinada
	// con tolerancia de un centavo.
	casos := []LineaGravable{
		{Precio: decimal.NewFromFloat(19.99), Cantidad: 3, Turismo: true},
		{Precio: decimal.NewFromFloat(0.01), Cantidad: 1},
		{Precio: decimal.NewFromFloat(1234.567), Cantidad: 7, TasaAlterna: true, Turismo: true},
		{Precio: decimal.NewFromFloat(55.55), Cantidad: 2, TasaAlterna: true},
	}
	tasas := tasasPrueba()
	tolerancia := decimal.NewFromFloat(0.01)

	for _, l := range casos {
		d := CalcularImpuestoLinea(l, tasas)

		combinada := tasas.ISV
		if l.TasaAlterna {
			combinada = tasas.ISVAlterna
		}
		if l.Turismo {
			combinada = combinada.Add(tasas.Turismo)
		}
		esperado := d.Neto.Mul(combinada)
		suma := d.ISV.Add(d.ISVAlterna).Add(d.Turismo)

		assert.True(t, suma.Sub(esperado).Abs().LessThanOrEqual(tolerancia),
			"suma %s vs esperado %s", suma, esperado)
	}
}

func TestTasasConDefaults(t *testing.T) {
	// Configuracion nula o en cero nunca se rechaza: se sustituyen los defaults.
	tasas := TasasImpuesto{}.ConDefaults()
	assert.Equal(t, "0.15", tasas.ISV.String())
	assert.Equal(t, "0.18", tasas.ISVAlterna.String())
	assert.Equal(t, "0.04", tasas.Turismo.String())

	// Valores negativos tambien caen al default.
	tasas = TasasImpuesto{ISV: decimal.NewFromFloat(-1)}.ConDefaults()
	assert.Equal(t, "0.15", tasas.ISV.String())

	// Un valor valido se conserva.
	tasas = TasasImpuesto{ISV: decimal.NewFromFloat(0.12)}.ConDefaults()
	assert.Equal(t, "0.12", tasas.ISV.String())
	assert.Equal(t, "0.18", tasas.ISVAlterna.String())
}
