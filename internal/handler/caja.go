package handler

import (
	"net/http"
	"strconv"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary      Abrir caja
// @Description  Abre la sesion de caja del operador con los fondos iniciales por moneda. Un operador solo puede tener una caja abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.AbrirCajaRequest true "Fondos iniciales"
// @Success      201  {object} dto.SesionCajaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary      Cerrar caja
// @Description  Registra el conteo fisico, calcula la diferencia contra el sistema y sella el kardex con la marca de CIERRE.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.CerrarCajaRequest true "Conteo fisico por moneda"
// @Success      200  {object} dto.SesionCajaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimiento godoc
// @Summary      Registrar ingreso/egreso manual
// @Tags         caja
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.MovimientoManualRequest true "Movimiento"
// @Success      201  {object} dto.SaldosCajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/caja/movimiento [post]
func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Activa godoc
// @Summary      Sesion abierta del operador
// @Tags         caja
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Success      200  {object} dto.SaldosCajaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/activa [get]
func (h *CajaHandler) Activa(c *gin.Context) {
	sesion, err := h.svc.SesionAbierta(c.Request.Context(), middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.Saldos(c.Request.Context(), sesion.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Saldos godoc
// @Summary      Saldos actuales de una sesion
// @Tags         caja
// @Produce      json
// @Param        id path string true "UUID de la sesion"
// @Success      200  {object} dto.SaldosCajaResponse
// @Router       /v1/caja/{id}/saldos [get]
func (h *CajaHandler) Saldos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Saldos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Resumen de una sesion (datos del reporte X)
// @Tags         caja
// @Produce      json
// @Param        id path string true "UUID de la sesion"
// @Success      200  {object} dto.ResumenCajaResponse
// @Router       /v1/caja/{id}/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Kardex godoc
// @Summary      Kardex de caja de una sesion
// @Tags         caja
// @Produce      json
// @Param        id path string true "UUID de la sesion"
// @Success      200  {array} dto.KardexCajaResponse
// @Router       /v1/caja/{id}/kardex [get]
func (h *CajaHandler) Kardex(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Kardex(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial godoc
// @Summary      Historial de sesiones de caja
// @Tags         caja
// @Produce      json
// @Param        limit query int false "Maximo de sesiones"
// @Success      200  {array} dto.SesionCajaResponse
// @Router       /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.ListSesiones(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
