package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gallery/internal/app/dto"
	"gallery/internal/domain"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserAdmin = "X-User-Admin"
)

// Viewer attaches the requesting user to the request context. Requests
// without X-User-ID run as anonymous.
func Viewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := domain.Viewer{IP: c.ClientIP()}

		if raw := c.GetHeader(HeaderUserID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id < 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: dto.Error{Code: "BAD_REQUEST", Message: HeaderUserID + " must be a user id"},
				})
				return
			}
			v.ID = id
			v.Admin = id > 0 && c.GetHeader(HeaderUserAdmin) == "true"
		}

		c.Request = c.Request.WithContext(domain.WithViewer(c.Request.Context(), v))
		c.Next()
	}
}
