package handler

import (
	"net/http"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"
	"github.com/luisjoselares/Pegasus-v1/internal/dto"
	"github.com/luisjoselares/Pegasus-v1/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Guardar godoc
// @Summary      Crear o actualizar cliente
// @Description  Upsert por cedula/RIF normalizado: el mismo documento nunca crea dos cuentas.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body body dto.GuardarClienteRequest true "Cliente"
// @Success      200  {object} dto.ClienteResponse
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Guardar(c *gin.Context) {
	var req dto.GuardarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Produce      json
// @Param        id path string true "UUID del cliente"
// @Success      200  {object} dto.ClienteResponse
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorCedula godoc
// @Summary      Buscar cliente por cedula/RIF
// @Tags         clientes
// @Produce      json
// @Param        cedula path string true "Cedula o RIF"
// @Success      200  {object} dto.ClienteResponse
// @Router       /v1/clientes/cedula/{cedula} [get]
func (h *ClientesHandler) BuscarPorCedula(c *gin.Context) {
	resp, err := h.svc.BuscarPorCedula(c.Request.Context(), c.Param("cedula"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Success      200  {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
