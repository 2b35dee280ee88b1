package handler

import (
	"net/http"
	"strconv"

	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/middleware"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// RegistrarVenta godoc
// @Summary      Registrar una venta
// @Description  Emite una factura o nota de entrega en una transaccion ACID: asigna numeracion fiscal, descuenta stock, asienta el cobro en caja.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        X-Usuario-ID header string true "UUID del operador"
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID := middleware.GetUsuarioID(c)

	resp, err := h.svc.RegistrarVenta(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerDocumento godoc
// @Summary      Consultar un documento por numero
// @Tags         ventas
// @Produce      json
// @Param        numero path string true "Numero de documento (FAC-/NE-/NC-)"
// @Success      200  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/documentos/{numero} [get]
func (h *VentasHandler) ObtenerDocumento(c *gin.Context) {
	resp, err := h.svc.ObtenerDocumento(c.Request.Context(), c.Param("numero"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarDocumentos godoc
// @Summary      Listar documentos
// @Description  Lista paginada filtrable por tipo de documento y fecha (YYYY-MM-DD).
// @Tags         ventas
// @Produce      json
// @Param        tipo_doc query string false "FACTURA | NOTA_ENTREGA | NOTA_CREDITO | all"
// @Param        fecha    query string false "YYYY-MM-DD"
// @Param        page     query int    false "Pagina"
// @Param        limit    query int    false "Tamano de pagina"
// @Success      200  {object} dto.DocumentoListResponse
// @Router       /v1/documentos [get]
func (h *VentasHandler) ListarDocumentos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListDocumentos(c.Request.Context(), c.Query("tipo_doc"), c.Query("fecha"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
