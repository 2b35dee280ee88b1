package handler

import (
	"net/http"
	"strconv"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar compra a proveedor
// @Description  Asienta la factura del proveedor en el libro de compras y da entrada al inventario recibido.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.RegistrarCompraRequest true "Compra"
// @Success      201  {object} dto.CompraResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarCompra(c.Request.Context(), middleware.GetUsuarioID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar compras registradas
// @Tags         compras
// @Produce      json
// @Param        page  query int false "Pagina"
// @Param        limit query int false "Tamano de pagina"
// @Success      200  {object} dto.CompraListResponse
// @Router       /v1/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListCompras(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
