package handler

import (
	"net/http"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ReporteX godoc
// @Summary      Reporte X de una sesion
// @Description  Foto fiscal de la sesion tal como esta; no consume numeracion.
// @Tags         reportes
// @Produce      json
// @Param        sesion_id path string true "UUID de la sesion"
// @Success      200  {object} dto.ReporteSesionResponse
// @Router       /v1/reportes/x/{sesion_id} [get]
func (h *ReportesHandler) ReporteX(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sesion_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ReporteX(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EmitirZ godoc
// @Summary      Emitir reporte Z
// @Description  Sella el resumen fiscal de una sesion cerrada bajo el siguiente numero Z de la serie.
// @Tags         reportes
// @Produce      json
// @Param        sesion_id path string true "UUID de la sesion"
// @Success      201  {object} dto.ReporteSesionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/reportes/z/{sesion_id} [post]
func (h *ReportesHandler) EmitirZ(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sesion_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.EmitirZ(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
