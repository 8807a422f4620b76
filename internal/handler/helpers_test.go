package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/service"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		nombre string
		err    error
		status int
		code   string
	}{
		{"conflicto", &service.ConflictError{Operador: "maria"}, http.StatusConflict, "conflicto"},
		{"estado", &service.StateError{Motivo: "no hay sesion de caja abierta"}, http.StatusUnprocessableEntity, "estado"},
		{"datos no disponibles", &service.DataUnavailableError{Consulta: "pagos_venta", Err: errors.New("timeout")}, http.StatusServiceUnavailable, "datos_no_disponibles"},
		{"desconocido", errors.New("algo salio mal"), http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				assert.Contains(t, w.Body.String(), tc.code)
			}
		})
	}
}

func TestBindAndValidateMontoNegativo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/caja/abrir",
		strings.NewReader(`{"monto_inicial": -5}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req dto.AbrirCajaRequest
	ok := bindAndValidate(c, &req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBindAndValidateDecimalRegistrado(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/caja/movimiento",
		strings.NewReader(`{"tipo":"ingreso","monto":150.25,"concepto":"Fondo de cambio"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req dto.MovimientoManualRequest
	ok := bindAndValidate(c, &req)

	assert.True(t, ok)
	assert.True(t, req.Monto.Equal(decimal.NewFromFloat(150.25)))
}
