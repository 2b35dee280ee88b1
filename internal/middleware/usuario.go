package middleware

import (
	"net/http"

	"github.com/luisjoselares/Pegasus-v1/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UsuarioIDKey = "usuario_id"

// UsuarioActuante resolves the acting operator from the X-Usuario-ID header
// set by the terminal. Every write operation records who performed it; reads
// pass through without one.
func UsuarioActuante() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Usuario-ID")
		if header != "" {
			id, err := uuid.Parse(header)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("X-Usuario-ID invalido"))
				return
			}
			c.Set(UsuarioIDKey, id)
		}
		c.Next()
	}
}

// RequireUsuario rejects write requests that carry no acting operator.
func RequireUsuario() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UsuarioIDKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("X-Usuario-ID requerido"))
			return
		}
		c.Next()
	}
}

// GetUsuarioID retrieves the acting operator id from the Gin context.
func GetUsuarioID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UsuarioIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
