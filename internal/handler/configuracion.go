package handler

import (
	"net/http"
	"strconv"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// ObtenerTasas godoc
// @Summary      Tasas de cambio vigentes
// @Tags         configuracion
// @Produce      json
// @Success      200  {object} dto.TasasResponse
// @Router       /v1/configuracion/tasas [get]
func (h *ConfiguracionHandler) ObtenerTasas(c *gin.Context) {
	resp, err := h.svc.ObtenerTasas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarTasas godoc
// @Summary      Actualizar tasas de cambio
// @Description  Cambia las tasas hacia adelante y deja constancia en el historial. Los documentos emitidos conservan su tasa capturada.
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.ActualizarTasasRequest true "Tasas nuevas"
// @Success      200  {object} dto.TasasResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/configuracion/tasas [put]
func (h *ConfiguracionHandler) ActualizarTasas(c *gin.Context) {
	var req dto.ActualizarTasasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarTasas(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistorialTasas godoc
// @Summary      Historial de cambios de tasa
// @Tags         configuracion
// @Produce      json
// @Param        limit query int false "Maximo de registros"
// @Success      200  {array} dto.HistorialTasaResponse
// @Router       /v1/configuracion/tasas/historial [get]
func (h *ConfiguracionHandler) HistorialTasas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListarHistorialTasas(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerEmpresa godoc
// @Summary      Datos fiscales de la empresa
// @Tags         configuracion
// @Produce      json
// @Success      200  {object} dto.EmpresaResponse
// @Router       /v1/configuracion/empresa [get]
func (h *ConfiguracionHandler) ObtenerEmpresa(c *gin.Context) {
	resp, err := h.svc.ObtenerEmpresa(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarEmpresa godoc
// @Summary      Actualizar datos fiscales de la empresa
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Param        body body dto.EmpresaRequest true "Identidad fiscal"
// @Success      200  {object} dto.EmpresaResponse
// @Router       /v1/configuracion/empresa [put]
func (h *ConfiguracionHandler) GuardarEmpresa(c *gin.Context) {
	var req dto.EmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarEmpresa(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
