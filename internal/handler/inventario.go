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

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// AjustarStock godoc
// @Summary      Ajuste manual de inventario
// @Description  Registra un movimiento de AJUSTE (reconteo, merma, carga inicial) con su entrada de kardex.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.AjusteStockRequest true "Ajuste"
// @Success      201  {object} dto.KardexInventarioResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/ajuste [post]
func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	var req dto.AjusteStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Kardex godoc
// @Summary      Kardex de inventario de un producto
// @Tags         inventario
// @Produce      json
// @Param        producto_id path string true "UUID del producto"
// @Param        limit query int false "Maximo de movimientos"
// @Success      200  {array} dto.KardexInventarioResponse
// @Router       /v1/inventario/{producto_id}/kardex [get]
func (h *InventarioHandler) Kardex(c *gin.Context) {
	id, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.Kardex(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarStock godoc
// @Summary      Auditar el stock de un producto
// @Description  Reconstruye el stock desde el kardex y lo compara con el stock cacheado.
// @Tags         inventario
// @Produce      json
// @Param        producto_id path string true "UUID del producto"
// @Success      200  {object} dto.StockResponse
// @Router       /v1/inventario/{producto_id}/verificar [get]
func (h *InventarioHandler) VerificarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("producto_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.VerificarStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
