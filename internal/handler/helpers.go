package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
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
// Returns false and writes the error response if validation fails;
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

// respondError maps the service error taxonomy to HTTP statuses. Business
// rejections carry their codigo so the terminal can branch on it.
func respondError(c *gin.Context, err error) {
	if rn, ok := apierror.EsReglaNegocio(err); ok {
		status := http.StatusConflict
		if rn.Codigo == apierror.CodigoDocumentoInvalido {
			status = http.StatusBadRequest
		}
		c.JSON(status, &apierror.APIError{Detail: rn.Mensaje, Codigo: rn.Codigo})
		return
	}
	if apierror.EsConflictoConcurrencia(err) {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
