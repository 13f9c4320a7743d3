package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gallery/internal/app/dto"
	"gallery/internal/domain"
)

// MetaHeaderPrefix prefixes the response header carrying each page meta value.
const MetaHeaderPrefix = "X-Meta-"

// PageRequest lets listeners see every page request first. They may halt
// it, redirect it, set cookies or attach page metadata to the response.
func PageRequest(events domain.Dispatcher, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := make(map[string]string)
		for _, ck := range c.Request.Cookies() {
			cookies[ck.Name] = ck.Value
		}

		ev := &domain.PageRequestEvent{
			Method:  c.Request.Method,
			Path:    c.Request.URL.Path,
			Viewer:  domain.ViewerFrom(c.Request.Context()),
			Cookies: cookies,
		}
		if err := events.Dispatch(c.Request.Context(), ev); err != nil {
			log.Error("page request listener failed", zap.String("path", ev.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: dto.Error{Code: "INTERNAL_ERROR", Message: "internal server error"},
			})
			return
		}

		for name, content := range ev.Meta {
			c.Header(MetaHeaderPrefix+http.CanonicalHeaderKey(name), content)
		}
		for _, ck := range ev.SetCookies {
			c.SetCookie(ck.Name, ck.Value, ck.MaxAge, "/", "", false, true)
		}

		switch {
		case ev.Halted:
			c.AbortWithStatusJSON(ev.HaltStatus, ev.Body)
		case ev.Redirect != "":
			c.Redirect(http.StatusFound, ev.Redirect)
			c.Abort()
		default:
			c.Next()
		}
	}
}
