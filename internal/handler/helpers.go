package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/solutecchn-corporation/set-oficial-sub000/internal/apierror"
	"github.com/solutecchn-corporation/set-oficial-sub000/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps the domain error taxonomy to HTTP statuses:
// ConflictError → 409 (close your existing session first), StateError → 422
// (hard stop), DataUnavailableError → 503 (caller should retry manually).
func respondServiceError(c *gin.Context, err error) {
	var (
		conflict    *service.ConflictError
		state       *service.StateError
		unavailable *service.DataUnavailableError
	)
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.WithCode("conflicto", err.Error()))
	case errors.As(err, &state):
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode("estado", err.Error()))
	case errors.As(err, &unavailable):
		c.JSON(http.StatusServiceUnavailable, apierror.WithCode("datos_no_disponibles", err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
