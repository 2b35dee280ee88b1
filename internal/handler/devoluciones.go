package handler

import (
	"net/http"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
)

type DevolucionesHandler struct{ svc service.DevolucionService }

func NewDevolucionesHandler(svc service.DevolucionService) *DevolucionesHandler {
	return &DevolucionesHandler{svc: svc}
}

// BuscarFactura godoc
// @Summary      Buscar factura para devolucion
// @Description  Retorna la factura con el saldo devolvible por linea.
// @Tags         devoluciones
// @Produce      json
// @Param        numero path string true "Numero de factura (FAC-...)"
// @Success      200  {object} dto.FacturaDevolucionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/devoluciones/factura/{numero} [get]
func (h *DevolucionesHandler) BuscarFactura(c *gin.Context) {
	resp, err := h.svc.BuscarFactura(c.Request.Context(), c.Param("numero"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProcesarDevolucion godoc
// @Summary      Procesar una devolucion
// @Description  Emite la nota de credito, reingresa el inventario, reembolsa (efectivo o saldo a favor) y anula la factura cuando queda totalmente devuelta.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.ProcesarDevolucionRequest true "Items a devolver y metodo de reembolso"
// @Success      201  {object} dto.DevolucionResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/devoluciones [post]
func (h *DevolucionesHandler) ProcesarDevolucion(c *gin.Context) {
	var req dto.ProcesarDevolucionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.svc.ProcesarDevolucion(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
