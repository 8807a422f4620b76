package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/apierror"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/dto"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/middleware"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/service"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una nueva sesion de caja para el operador autenticado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Monto inicial"
// @Success 201 {object} dto.SesionCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Abrir(c.Request.Context(), claims.Operador, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Activa returns the currently open cash session for the authenticated operator.
func (h *CajaHandler) Activa(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ObtenerActiva(c.Request.Context(), claims.Operador)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin sesion activa"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Arqueo godoc
// @Summary Calcula el arqueo (saldo teorico) de la sesion activa
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ArqueoResponse
// @Failure 422 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/caja/arqueo [get]
func (h *CajaHandler) Arqueo(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Arqueo(c.Request.Context(), claims.Operador)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la sesion activa comparando conteo fisico contra registrado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Conteo fisico por categoria"
// @Success 200 {object} dto.CierreCajaResponse
// @Failure 422 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/caja/cierre [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.Cerrar(c.Request.Context(), claims.Operador, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary Registra un ingreso o egreso manual en la caja activa
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimientoManualRequest true "Movimiento manual"
// @Success 204
// @Failure 422 {object} apierror.APIError
// @Router /v1/caja/movimiento [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.RegistrarMovimiento(c.Request.Context(), claims.Operador, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarDevolucion registers a customer refund paid out from the drawer.
func (h *CajaHandler) RegistrarDevolucion(c *gin.Context) {
	var req dto.DevolucionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.RegistrarDevolucion(c.Request.Context(), claims.Operador, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reporte returns the stored snapshot of a session (open or closed).
func (h *CajaHandler) Reporte(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Reporte(c.Request.Context(), id)
	if err != nil {
		// A missing session is 404; a failed lookup keeps the 503 mapping so a
		// flaky database is not reported as a nonexistent session.
		var unavailable *service.DataUnavailableError
		if errors.As(err, &unavailable) {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of closed cash sessions.
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
