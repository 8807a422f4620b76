package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/service"
)

type ImpuestosHandler struct{ svc service.ImpuestoService }

func NewImpuestosHandler(svc service.ImpuestoService) *ImpuestosHandler {
	return &ImpuestosHandler{svc: svc}
}

// Calcular godoc
// @Summary Calcula el desglose de impuestos de una linea de venta
// @Tags impuestos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CalcularImpuestoRequest true "Linea gravable"
// @Success 200 {object} dto.DesgloseImpuestoResponse
// @Router /v1/impuestos/calcular [post]
func (h *ImpuestosHandler) Calcular(c *gin.Context) {
	var req dto.CalcularImpuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	desglose := h.svc.Calcular(c.Request.Context(), service.LineaGravable{
		Precio:      req.Precio,
		Cantidad:    req.Cantidad,
		Exento:      req.Exento,
		TasaAlterna: req.TasaAlterna,
		Turismo:     req.Turismo,
	})

	c.JSON(http.StatusOK, dto.DesgloseImpuestoResponse{
		Neto:       desglose.Neto.Round(2),
		ISV:        desglose.ISV.Round(2),
		ISVAlterna: desglose.ISVAlterna.Round(2),
		Turismo:    desglose.Turismo.Round(2),
		Total:      desglose.Total().Round(2),
	})
}

// Tasas returns the effective tax rates (configured or defaults).
func (h *ImpuestosHandler) Tasas(c *gin.Context) {
	tasas := h.svc.ObtenerTasas(c.Request.Context())
	c.JSON(http.StatusOK, dto.TasasImpuestoResponse{
		ISV:        tasas.ISV,
		ISVAlterna: tasas.ISVAlterna,
		Turismo:    tasas.Turismo,
	})
}
